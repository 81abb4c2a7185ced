// Package main provides the CLI entrypoint for morsekey.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/morsekey/internal/audio"
	"github.com/verte-zerg/morsekey/internal/config"
	"github.com/verte-zerg/morsekey/internal/device"
	"github.com/verte-zerg/morsekey/internal/drill"
	"github.com/verte-zerg/morsekey/internal/keying"
	"github.com/verte-zerg/morsekey/internal/morse"
	"github.com/verte-zerg/morsekey/internal/score"
	"github.com/verte-zerg/morsekey/internal/stats"
	"github.com/verte-zerg/morsekey/internal/trainer"
	"github.com/verte-zerg/morsekey/internal/tui"
)

const (
	defaultUnitMs         = 120
	defaultCutoffUnits    = 2.5
	defaultEndIdleUnits   = 3.0
	defaultStartTimeout   = 8
	defaultReleaseTimeout = 10
	defaultMinPressMs     = 30
	defaultPollMs         = 1
	defaultInput          = "keyboard"
	defaultOutput         = "beep"
	defaultKeyPin         = "GPIO17"
	defaultBuzzerPin      = "GPIO27"
	defaultDebounceMs     = 30
	defaultHoldMs         = 150
	defaultToneHz         = 800
	defaultVolumeDB       = 0.0
	defaultCharset        = "letters"
	defaultDrillFactor    = 2.0
	defaultCurveWindow    = 10
)

var (
	unitMs            int
	cutoffUnits       float64
	endIdleUnits      float64
	startTimeoutSec   int
	releaseTimeoutSec int
	minPressMs        int
	pollMs            int

	inputBackend  string
	outputBackend string
	keyPin        string
	buzzerPin     string
	debounceMs    int
	holdMs        int
	toneHz        int
	volumeDB      float64
	sidetone      bool

	charset     string
	drillFactor float64
	curveWindow int
	debugKeying bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "morsekey",
		Short:         "Morse keying tutor",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPractice(cmd, false)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.IntVar(&unitMs, "unit", defaultUnitMs, "dot unit duration in ms")
	flags.Float64Var(&cutoffUnits, "cutoff", defaultCutoffUnits, "dot/dash cutoff in units")
	flags.Float64Var(&endIdleUnits, "end-idle", defaultEndIdleUnits, "idle gap ending an attempt, in units")
	flags.IntVar(&startTimeoutSec, "start-timeout", defaultStartTimeout, "seconds to wait for the first press")
	flags.IntVar(&releaseTimeoutSec, "release-timeout", defaultReleaseTimeout, "seconds before a held key counts as stuck")
	flags.IntVar(&minPressMs, "min-press", defaultMinPressMs, "shortest press in ms that counts as keying")
	flags.IntVar(&pollMs, "poll", defaultPollMs, "input sampling period in ms")
	flags.StringVar(&inputBackend, "input", defaultInput, "key input backend (keyboard|gpio)")
	flags.StringVar(&outputBackend, "output", defaultOutput, "indicator backend (beep|gpio|off)")
	flags.StringVar(&keyPin, "key-pin", defaultKeyPin, "GPIO pin for the key")
	flags.StringVar(&buzzerPin, "buzzer-pin", defaultBuzzerPin, "GPIO pin for the buzzer")
	flags.IntVar(&debounceMs, "debounce", defaultDebounceMs, "GPIO key debounce window in ms")
	flags.IntVar(&holdMs, "hold", defaultHoldMs, "keyboard hold window in ms")
	flags.IntVar(&toneHz, "tone", defaultToneHz, "sidetone frequency in Hz")
	flags.Float64Var(&volumeDB, "volume", defaultVolumeDB, "speaker volume adjustment in dB")
	flags.BoolVar(&sidetone, "sidetone", true, "mirror key presses audibly during capture")
	flags.StringVar(&charset, "charset", defaultCharset, "practice set (letters|digits|punctuation|all|explicit chars)")
	flags.Float64Var(&drillFactor, "drill-factor", defaultDrillFactor, "weight factor for missed characters in drills")
	flags.IntVar(&curveWindow, "curve-window", defaultCurveWindow, "moving average window for the summary plot")
	flags.BoolVar(&debugKeying, "debug-keying", false, "log press classification to the keying log")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCodesCmd())
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newDrillCmd())

	return rootCmd
}

// applyFileConfig merges config-file values under any flags the user set
// explicitly.
func applyFileConfig(cmd *cobra.Command, fileCfg config.FileConfig) {
	applyIntConfig(cmd, "unit", &unitMs, fileCfg.Timing.UnitMs)
	applyFloatConfig(cmd, "cutoff", &cutoffUnits, fileCfg.Timing.CutoffUnits)
	applyFloatConfig(cmd, "end-idle", &endIdleUnits, fileCfg.Timing.EndIdleUnits)
	applyIntConfig(cmd, "start-timeout", &startTimeoutSec, fileCfg.Timing.StartTimeoutSec)
	applyIntConfig(cmd, "release-timeout", &releaseTimeoutSec, fileCfg.Timing.ReleaseTimeoutSec)
	applyIntConfig(cmd, "min-press", &minPressMs, fileCfg.Timing.MinPressMs)
	applyIntConfig(cmd, "poll", &pollMs, fileCfg.Timing.PollMs)
	applyStringConfig(cmd, "input", &inputBackend, fileCfg.Device.Input)
	applyStringConfig(cmd, "output", &outputBackend, fileCfg.Device.Output)
	applyStringConfig(cmd, "key-pin", &keyPin, fileCfg.Device.KeyPin)
	applyStringConfig(cmd, "buzzer-pin", &buzzerPin, fileCfg.Device.BuzzerPin)
	applyIntConfig(cmd, "debounce", &debounceMs, fileCfg.Device.DebounceMs)
	applyIntConfig(cmd, "hold", &holdMs, fileCfg.Device.HoldMs)
	applyIntConfig(cmd, "tone", &toneHz, fileCfg.Device.ToneHz)
	applyFloatConfig(cmd, "volume", &volumeDB, fileCfg.Device.VolumeDB)
	applyBoolConfig(cmd, "sidetone", &sidetone, fileCfg.Device.Sidetone)
	applyStringConfig(cmd, "charset", &charset, fileCfg.Practice.Charset)
	applyFloatConfig(cmd, "drill-factor", &drillFactor, fileCfg.Practice.DrillFactor)
	applyIntConfig(cmd, "curve-window", &curveWindow, fileCfg.Practice.CurveWindow)
	applyBoolConfig(cmd, "debug-keying", &debugKeying, fileCfg.Practice.DebugKeying)
}

func resolveConfig(cmd *cobra.Command) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFileConfig(cmd, fileCfg)
	return validateConfig()
}

func validateConfig() error {
	if unitMs <= 0 {
		return fmt.Errorf("--unit must be > 0")
	}
	if cutoffUnits <= 1 {
		return fmt.Errorf("--cutoff must be > 1 unit")
	}
	if endIdleUnits <= 0 {
		return fmt.Errorf("--end-idle must be > 0 units")
	}
	if startTimeoutSec <= 0 {
		return fmt.Errorf("--start-timeout must be > 0")
	}
	if releaseTimeoutSec <= 0 {
		return fmt.Errorf("--release-timeout must be > 0")
	}
	if minPressMs < 0 {
		return fmt.Errorf("--min-press must be >= 0")
	}
	if pollMs <= 0 || pollMs >= unitMs {
		return fmt.Errorf("--poll must be > 0 and smaller than --unit")
	}
	switch inputBackend {
	case "keyboard", "gpio":
	default:
		return fmt.Errorf("--input must be keyboard or gpio")
	}
	switch outputBackend {
	case "beep", "gpio", "off":
	default:
		return fmt.Errorf("--output must be beep, gpio, or off")
	}
	if debounceMs < 0 {
		return fmt.Errorf("--debounce must be >= 0")
	}
	if holdMs <= 0 {
		return fmt.Errorf("--hold must be > 0")
	}
	if toneHz < 50 || toneHz > 10000 {
		return fmt.Errorf("--tone must be between 50 and 10000 Hz")
	}
	if volumeDB < -10 || volumeDB > 10 {
		return fmt.Errorf("--volume must be between -10 and 10 dB")
	}
	if drillFactor < 0 {
		return fmt.Errorf("--drill-factor must be >= 0")
	}
	if curveWindow < 1 {
		return fmt.Errorf("--curve-window must be >= 1")
	}
	if _, err := morse.Charset(charset); err != nil {
		return fmt.Errorf("--charset: %w", err)
	}
	return nil
}

func keyingParams() keying.Params {
	return keying.Params{
		Unit:           time.Duration(unitMs) * time.Millisecond,
		MinPress:       time.Duration(minPressMs) * time.Millisecond,
		StartTimeout:   time.Duration(startTimeoutSec) * time.Second,
		ReleaseTimeout: time.Duration(releaseTimeoutSec) * time.Second,
		EndIdleUnits:   endIdleUnits,
		CutoffUnits:    cutoffUnits,
		PollInterval:   time.Duration(pollMs) * time.Millisecond,
	}
}

func openOutput() (keying.Output, func(), error) {
	switch outputBackend {
	case "beep":
		spk, err := audio.OpenSpeaker(toneHz, volumeDB)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open speaker: %w", err)
		}
		return spk, spk.Close, nil
	case "gpio":
		buz, err := device.OpenGPIOBuzzer(buzzerPin)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open buzzer: %w", err)
		}
		return buz, buz.Off, nil
	default:
		return device.NopIndicator{}, func() {}, nil
	}
}

// openInput returns the key and, for the keyboard backend, the tap hook
// the TUI feeds keystrokes into.
func openInput() (keying.Input, func(), error) {
	switch inputBackend {
	case "gpio":
		key, err := device.OpenGPIOKey(keyPin, time.Duration(debounceMs)*time.Millisecond)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open key: %w", err)
		}
		return key, nil, nil
	default:
		key := device.NewKeyboardKey(time.Duration(holdMs) * time.Millisecond)
		return key, key.Tap, nil
	}
}

func newKeyingLogger() (*zap.SugaredLogger, func(), error) {
	if !debugKeying {
		return zap.NewNop().Sugar(), func() {}, nil
	}
	path := config.DefaultKeyingLogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	logger, err := cfg.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open keying log: %w", err)
	}
	return logger.Sugar(), func() { _ = logger.Sync() }, nil
}

func runPractice(cmd *cobra.Command, drillMode bool) error {
	if err := resolveConfig(cmd); err != nil {
		return err
	}

	logger, closeLog, err := newKeyingLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	out, closeOut, err := openOutput()
	if err != nil {
		return err
	}
	defer closeOut()

	in, tap, err := openInput()
	if err != nil {
		return err
	}

	params := keyingParams()
	clock := keying.SystemClock()
	recorder := keying.NewRecorder(in, out, clock, params, sidetone, logger)
	player := audio.NewPlayer(out, clock, params.Unit)
	scorer := score.NewScorer(params.Unit)
	session := trainer.NewSession(recorder, player, scorer, logger)
	tally := stats.NewTally()

	opts := tui.Options{
		Session:  session,
		Tally:    tally,
		Params:   params,
		KeyTap:   tap,
		Practice: true,
	}
	if drillMode {
		chars, err := morse.Charset(charset)
		if err != nil {
			return err
		}
		opts.Drill = drill.New(chars)
		opts.DrillFactor = drillFactor
	}

	model := tui.NewModel(opts)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	if err := stats.RenderSummary(os.Stdout, tally, curveWindow); err != nil {
		logErrf("failed to render summary: %v\n", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newCodesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "codes",
		Short: "Print the Morse dictionary",
		Args:  cobra.NoArgs,
		RunE:  runCodesCmd,
	}
}

func runCodesCmd(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()
	for _, ch := range morse.Characters() {
		code, _ := morse.Lookup(ch)
		if _, err := fmt.Fprintf(w, "%c  %-7s %s\n", ch, code, code.Words()); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play <text>...",
		Short: "Play text as Morse code",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runPlayCmd,
	}
}

func runPlayCmd(cmd *cobra.Command, args []string) error {
	if err := resolveConfig(cmd); err != nil {
		return err
	}
	out, closeOut, err := openOutput()
	if err != nil {
		return err
	}
	defer closeOut()

	player := audio.NewPlayer(out, keying.SystemClock(), time.Duration(unitMs)*time.Millisecond)
	player.PlayText(strings.Join(args, " "))
	return nil
}

func newDrillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drill",
		Short: "Practice random characters, weighted toward misses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPractice(cmd, true)
		},
	}
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# morsekey configuration
# Uncomment a value to enable it. CLI flags override config values.

[timing]
# unit = %d               # Dot unit duration (ms)
# cutoff = %.1f            # Dot/dash cutoff (units)
# end-idle = %.1f          # Idle gap ending an attempt (units)
# start-timeout = %d       # Wait for the first press (s)
# release-timeout = %d    # Held key counts as stuck after (s)
# min-press = %d          # Shortest press that counts (ms)
# poll = %d                # Input sampling period (ms)

[device]
# input = %q      # Key input: keyboard or gpio
# output = %q         # Indicator: beep, gpio, or off
# key-pin = %q      # GPIO pin for the key
# buzzer-pin = %q   # GPIO pin for the buzzer
# debounce = %d          # GPIO key debounce window (ms)
# hold = %d             # Keyboard hold window (ms)
# tone = %d             # Sidetone frequency (Hz)
# volume = %.1f           # Speaker volume adjustment (dB)
# sidetone = true        # Mirror key presses audibly during capture

[practice]
# charset = %q     # letters, digits, punctuation, all, or explicit chars
# drill-factor = %.1f     # Weight factor for missed characters
# curve-window = %d      # Moving average window for the summary plot
# debug-keying = false   # Log press classification to the keying log
`,
		defaultUnitMs,
		defaultCutoffUnits,
		defaultEndIdleUnits,
		defaultStartTimeout,
		defaultReleaseTimeout,
		defaultMinPressMs,
		defaultPollMs,
		defaultInput,
		defaultOutput,
		defaultKeyPin,
		defaultBuzzerPin,
		defaultDebounceMs,
		defaultHoldMs,
		defaultToneHz,
		defaultVolumeDB,
		defaultCharset,
		defaultDrillFactor,
		defaultCurveWindow,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
