package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/muurk/uvcctl/internal/device"
	"github.com/muurk/uvcctl/internal/settings"
	"github.com/muurk/uvcctl/internal/tui"
	"github.com/muurk/uvcctl/internal/ui"
	"github.com/muurk/uvcctl/internal/urls"
)

// Command flags
var (
	outputFormat string
	assumeYes    bool
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	warnColor    = color.New(color.FgYellow)
	dimColor     = color.New(color.FgHiBlack)
	boldColor    = color.New(color.Bold)
)

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(checkCmd)
}

// showCmd prints the current settings
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current camera settings",
	Long: `Read every setting from the camera and print it.

Settings hidden by an active automatic mode (for example Exposure while
Auto Exposure is on) are listed as controlled by that mode.`,
	Example: `  # Human readable listing
  uvcctl show

  # JSON output for scripting
  uvcctl show --format json`,
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVar(&outputFormat, "format", "detailed", "Output format (detailed, json)")
}

func runShow(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.pipeline.Refresh(cmd.Context()); err != nil {
		return fmt.Errorf("failed to read camera settings: %w", err)
	}
	state := s.pipeline.State()

	switch outputFormat {
	case "json":
		data, err := json.MarshalIndent(state, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
	case "detailed":
		writeSettings(os.Stdout, s.cfg.Device, state)
	default:
		return fmt.Errorf("unknown format %q (use detailed or json)", outputFormat)
	}
	return nil
}

// writeSettings prints the full catalog with lock annotations
func writeSettings(w io.Writer, devicePath string, state tui.State) {
	_, _ = boldColor.Fprintf(w, "%s\n", devicePath)
	_, _ = fmt.Fprintln(w, statusText(state.Status))
	_, _ = fmt.Fprintln(w)

	for _, e := range state.Catalog() {
		line := fmt.Sprintf("  %-22s %s", e.Definition.Label, e.Display())
		switch {
		case settings.IsLocked(e.Definition.Key, state.Settings):
			ctrl, _ := settings.Controller(e.Definition.Key)
			ctrlDef, _ := settings.DefinitionFor(ctrl)
			_, _ = dimColor.Fprintf(w, "%s  (controlled by %s)\n", line, ctrlDef.Label)
		case settings.IsExclusive(e.Definition.Key) && state.Status.InUse:
			_, _ = fmt.Fprint(w, line)
			_, _ = warnColor.Fprintln(w, "  (locked: in use)")
		default:
			_, _ = fmt.Fprintln(w, line)
		}
	}
}

func statusText(status device.DeviceStatus) string {
	switch {
	case status.Error != "":
		return errorColor.Sprintf("Error: %s", status.Error)
	case status.InUse:
		return warnColor.Sprint("In use by another application")
	case status.Available:
		return successColor.Sprint("Available")
	default:
		return dimColor.Sprint("Unavailable")
	}
}

// infoCmd prints the driver's device report
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show device information",
	Long: `Print driver information, the current format and every control the
camera reports, with ranges and defaults.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd, false)
		if err != nil {
			return err
		}
		defer s.close()

		fmt.Println(s.pipeline.Info(cmd.Context()))
		return nil
	},
}

// setCmd changes one setting
var setCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one camera setting",
	Long: `Change a single setting using the same rules as the interactive controller.

Keys: ` + strings.Join(settingKeys(), ", ") + `

Ranges are clamped to their limits. Toggles accept on/off. Resolution,
pixel format and frame rate take one of the listed options, for example
1280x720, MJPG or 30fps.`,
	Example: `  uvcctl set brightness 140
  uvcctl set autoExposure off
  uvcctl set exposureValue 250
  uvcctl set resolution 1920x1080
  uvcctl set powerLineFrequency 50Hz`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

func settingKeys() []string {
	defs := settings.Definitions()
	keys := make([]string, 0, len(defs))
	for _, d := range defs {
		keys = append(keys, string(d.Key))
	}
	return keys
}

func runSet(cmd *cobra.Command, args []string) error {
	def, ok := settings.DefinitionFor(settings.Key(args[0]))
	if !ok {
		return fmt.Errorf("unknown setting %q (valid: %s)", args[0], strings.Join(settingKeys(), ", "))
	}
	value, err := settings.ParseValue(def, args[1])
	if err != nil {
		return err
	}

	s, err := newSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.close()

	ctx := cmd.Context()
	if err := s.pipeline.Refresh(ctx); err != nil {
		return fmt.Errorf("failed to read camera settings: %w", err)
	}

	if err := s.pipeline.Permit(def.Key); err != nil {
		return err
	}

	outcome := s.pipeline.Apply(ctx, def.Key, value)
	if outcome.Message != "" {
		return fmt.Errorf("%s", outcome.Message)
	}

	// The camera is the source of truth; report what it now holds
	requested := settings.Entry{Definition: def, Value: value}.Display()
	entry, _ := s.pipeline.State().Catalog().Find(def.Key)
	if entry.Display() != requested {
		_, _ = warnColor.Print("⚠ ")
		fmt.Printf("%s requested %s, camera reports %s\n", def.Label, requested, entry.Display())
		return nil
	}

	_, _ = successColor.Print("✓ ")
	fmt.Printf("%s set to %s\n", def.Label, entry.Display())
	return nil
}

// optimizeCmd applies the optimal profile
var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Apply optimal camera settings",
	Long: `Apply the optimal profile: the configured format (default 1920x1080 MJPG
at 30fps) with every automatic mode enabled and the configured picture
controls. Every step is attempted even when earlier steps fail.`,
	RunE: runOptimize,
}

func runOptimize(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.close()

	p := ui.NewPrinter(os.Stdout)
	p.PrintHeader("Optimize", "uvcctl optimize", ui.Field{Key: "Device", Value: s.cfg.Device})

	result := s.pipeline.Optimize(cmd.Context())
	return printComposite(p, s.pipeline.State(), result, tui.OptimizeFailedTitle, tui.MsgOptimized)
}

// resetCmd restores defaults
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset camera settings to defaults",
	Long: `Reset every control to the default reported by the driver and restore
the default format. Asks for confirmation unless --yes is given.`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")
}

func runReset(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.close()

	p := ui.NewPrinter(os.Stdout)
	p.PrintHeader(tui.ConfirmResetTitle, "uvcctl reset", ui.Field{Key: "Device", Value: s.cfg.Device})

	if !assumeYes {
		ok := ui.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), tui.ConfirmResetTitle,
			[]string{"All picture controls, automatic modes and the capture format return to their defaults"},
			"Continue?")
		if !ok {
			return nil
		}
	}

	result := s.pipeline.Reset(cmd.Context())
	return printComposite(p, s.pipeline.State(), result, tui.ResetFailedTitle, tui.MsgReset)
}

// printComposite reports a composite result with the resulting format
func printComposite(p *ui.Printer, state tui.State, result device.CompositeResult, failTitle, successMsg string) error {
	if len(result.Errors) > 0 {
		err := fmt.Errorf("%s", strings.Join(result.Errors, ". "))
		p.PrintError(failTitle, err, troubleshooting(state.Status))
		return fmt.Errorf("%s", strings.ToLower(failTitle))
	}

	p.PrintSuccess(successMsg,
		ui.Field{Key: "Resolution", Value: state.Format.Resolution()},
		ui.Field{Key: "Pixel Format", Value: state.Format.PixelFormat},
		ui.Field{Key: "Frame Rate", Value: settings.FormatFrameRate(state.Format.FrameRate)},
	)
	return nil
}

func troubleshooting(status device.DeviceStatus) []string {
	if status.InUse {
		return []string{
			"Another application is streaming from the camera",
			"Close video calls, recorders and browsers using the camera, then retry",
			"See " + urls.Troubleshooting,
		}
	}
	return []string{
		"Run 'uvcctl check' to verify v4l2-ctl and the device node",
		"Run 'uvcctl info' to see which controls the camera supports",
		"Control reference: " + urls.V4L2Controls,
	}
}

// checkCmd verifies prerequisites
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that v4l2-ctl and the camera are available",
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.close()

	p := ui.NewPrinter(os.Stdout)
	p.PrintHeader("Prerequisites", "uvcctl check",
		ui.Field{Key: "Device", Value: s.cfg.Device},
		ui.Field{Key: "Driver", Value: s.cfg.Driver.Path},
	)
	p.Newline()

	ctx := cmd.Context()
	result := device.ValidatePrerequisites(ctx, s.cfg.DeviceConfig(), s.fs)
	for _, check := range result.Checks {
		detail := check.Version
		if detail == "" {
			detail = check.Path
		}
		p.PrintCheck(check.Available, check.Name, detail, check.Message)
	}
	p.Newline()

	if !result.AllAvailable {
		p.PrintError("Prerequisites not met", nil, []string{
			"Install v4l2-ctl from the v4l-utils package (" + urls.V4LUtils + ")",
			"List cameras with: v4l2-ctl --list-devices",
			"Pass the camera node with --device",
		})
		return fmt.Errorf("prerequisites not met")
	}

	status := s.backend.GetDeviceStatus(ctx)
	p.PrintCheck(status.Error == "", "Device status", statusText(status), "")
	if status.InUse {
		_, _ = warnColor.Println("  Resolution, pixel format and frame rate are locked while the camera is in use")
	}
	return nil
}
