package modules

import (
	"livewall-server/internal/modules/account"
	accountrepo "livewall-server/internal/modules/account/repo"
	"livewall-server/internal/modules/submission"
	submissionrepo "livewall-server/internal/modules/submission/repo"
	platformservice "livewall-server/internal/platform/service"
	"livewall-server/internal/storage"
)

type AppModules struct {
	Submission *submission.Module
	Account    *account.Module
}

func New(
	appService *platformservice.AppService,
	submissionStore submissionrepo.SubmissionStore,
	accountStore accountrepo.AccountStore,
	objectStore storage.ObjectStore,
) *AppModules {
	return &AppModules{
		Submission: submission.New(submission.NewService(appService, submissionStore, objectStore)),
		Account:    account.New(account.NewService(appService, accountStore)),
	}
}
