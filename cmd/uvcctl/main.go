// Uvcctl is an interactive terminal controller for UVC webcams.
//
// It reads and changes camera settings through the v4l2-ctl utility,
// presenting picture controls, automatic modes and the capture format as
// a keyboard-driven list. Settings that need exclusive access to the
// camera are locked while another application is streaming from it.
//
// Usage:
//
//	uvcctl [command] [flags]
//
// Running without arguments launches the interactive controller.
// See 'uvcctl --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/uvcctl/internal/urls"
	"github.com/muurk/uvcctl/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "uvcctl",
	Short: "UVC Camera Control",
	Long: `An interactive terminal controller for UVC webcams.

Adjusts brightness, contrast, exposure, focus, white balance, power line
frequency, resolution, pixel format and frame rate through v4l2-ctl.

Resolution, pixel format and frame rate cannot be changed while another
application is using the camera.

If no command is specified, the interactive controller will launch.`,
	Version: version.Version,
	Example: `  # Control the default camera
  uvcctl

  # Control a second camera and log driver calls
  uvcctl --device /dev/video2 --log-level debug --log-file /tmp/uvcctl.log

  # Change one setting without the interactive controller
  uvcctl set brightness 140`,
	RunE: runController,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Full())
		fmt.Println(urls.Repository)
	},
}
