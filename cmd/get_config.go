package cmd

import (
	"dashshim/core"

	"github.com/spf13/viper"
)

func GetConfig() *core.Config {
	return &core.Config{
		Port:                 core.ResolvePort(viper.GetString("port")),
		AppCommand:           viper.GetString("command"),
		AppArgs:              viper.GetStringSlice("args"),
		WorkDir:              viper.GetString("workdir"),
		TargetURL:            viper.GetString("target"),
		PageTitle:            viper.GetString("title"),
		StartupDelaySeconds:  viper.GetInt("startup-delay-seconds"),
		ProbeTimeoutSeconds:  viper.GetInt("probe-timeout-seconds"),
		ShutdownGraceSeconds: viper.GetInt("shutdown-grace-seconds"),
		AdminPort:            viper.GetInt("admin-port"),
		EnableVerboseLog:     viper.GetBool("verbose"),
	}
}
