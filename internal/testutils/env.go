package testutils

import (
	"os"
	"testing"
)

// SavedEnv 记录环境变量被覆盖前的状态
type SavedEnv struct {
	Key   string
	Had   bool
	Value string
}

// SetEnv 设置环境变量并返回原值，配合 RestoreEnv 在 TestMain 中使用
func SetEnv(key, value string) SavedEnv {
	prev, had := os.LookupEnv(key)
	_ = os.Setenv(key, value)
	return SavedEnv{Key: key, Had: had, Value: prev}
}

func RestoreEnv(envs []SavedEnv) {
	for i := len(envs) - 1; i >= 0; i-- {
		env := envs[i]
		if env.Had {
			_ = os.Setenv(env.Key, env.Value)
		} else {
			_ = os.Unsetenv(env.Key)
		}
	}
}

// WithEnv 为单个测试设置一组 LIVEWALL_ 等环境变量，测试结束自动恢复
func WithEnv(t testing.TB, vars map[string]string) {
	t.Helper()
	saved := make([]SavedEnv, 0, len(vars))
	for k, v := range vars {
		saved = append(saved, SetEnv(k, v))
	}
	t.Cleanup(func() { RestoreEnv(saved) })
}
