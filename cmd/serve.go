/*
Copyright © 2026 Dashshim Contributors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"dashshim/core"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Launch the application and serve the redirect page",
	Long: `Launch the application, wait for it to start and serve a page on PORT
(default 3000) that redirects to the application's address.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		config := GetConfig()
		return core.RunCLIInstance(config)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", core.DefaultPort, "redirect server port (overrides PORT)")
	serveCmd.Flags().String("command", core.DefaultAppCommand, "application interpreter or executable")
	serveCmd.Flags().StringSlice("args", core.DefaultAppArgs, "application arguments")
	serveCmd.Flags().String("workdir", "", "application working directory")
	serveCmd.Flags().StringP("target", "t", core.DefaultTargetURL, "application address browsers are redirected to")
	serveCmd.Flags().String("title", core.DefaultPageTitle, "redirect page title")
	serveCmd.Flags().Int("startup-delay-seconds", core.DefaultStartupDelaySeconds, "fixed delay before serving; 0 probes the target instead")
	serveCmd.Flags().Int("probe-timeout-seconds", core.DefaultProbeTimeoutSeconds, "how long to probe the target when the startup delay is 0")
	serveCmd.Flags().Int("shutdown-grace-seconds", core.DefaultShutdownGraceSeconds, "time the application gets to exit before it is killed")
	serveCmd.Flags().Int("admin-port", 0, "port for /live, /ready and /metrics (disabled when 0)")
	serveCmd.Flags().BoolP("verbose", "v", false, "enable verbose logging")

	for _, name := range []string{
		"port", "command", "args", "workdir", "target", "title",
		"startup-delay-seconds", "probe-timeout-seconds", "shutdown-grace-seconds",
		"admin-port", "verbose",
	} {
		viper.BindPFlag(name, serveCmd.Flags().Lookup(name))
	}
}
