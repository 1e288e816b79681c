package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"gochip8/emu/audio"
	"gochip8/emu/cpu"
	"gochip8/emu/screen"
	"gochip8/emu/terminal"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// gochip8 start 'path/to/ROM' -r 60 -i 12
var startCmd = &cobra.Command{
	Use:          "start `path/ROM`",
	Short:        "load and start the emulator",
	Args:         cobra.ExactArgs(1),
	RunE:         start,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(startCmd)

	flags := startCmd.Flags()
	flags.IntP("refresh", "r", 60, "sets the refresh rate of the display in Hz")
	flags.IntP("ipt", "i", 12, "instructions executed per tick")
	flags.BoolP("superchip", "s", false, "use the SUPER-CHIP quirk profile")
	flags.BoolP("terminal", "t", false, "render to the terminal instead of a window")
	flags.String("font", "", "custom font file replacing the built-in glyphs")
	flags.Int64("seed", 0, "random seed, 0 seeds from the clock")
	flags.Bool("debug", false, "enable debug logging")

	for _, name := range []string{"refresh", "ipt", "superchip", "terminal", "font", "seed", "debug"} {
		cobra.CheckErr(viper.BindPFlag(name, flags.Lookup(name)))
	}

	viper.SetDefault("colors.on", "#FFFFFF")
	viper.SetDefault("colors.off", "#000000")
	viper.SetDefault("load-base", 0)
	viper.SetDefault("quirks.stack-limit", 0)
}

func start(cmd *cobra.Command, args []string) error {
	logger := newLogger(viper.GetBool("debug"))

	rom, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading ROM: %w", err)
	}

	var font []byte
	if path := viper.GetString("font"); path != "" {
		font, err = os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading font: %w", err)
		}
	}

	cfg := cpu.Config{
		InstructionsPerTick: viper.GetInt("ipt"),
		TickRate:            viper.GetInt("refresh"),
		LoadBase:            uint16(viper.GetInt("load-base")),
		Quirks:              buildQuirks(),
		Colors: cpu.ColorMap{
			On:  viper.GetString("colors.on"),
			Off: viper.GetString("colors.off"),
		},
		RandSeed: viper.GetInt64("seed"),
	}

	emu, err := cpu.NewEMU(cfg, rom, font)
	if err != nil {
		return fmt.Errorf("starting the emulator: %w", err)
	}

	emu.SetRPLFlags(loadRPLFlags())
	defer saveRPLFlags(logger, emu)

	logger.Info("session ready",
		log.String("rom", args[0]),
		log.Int("bytes", len(rom)),
		log.Int("ipt", cfg.InstructionsPerTick),
		log.Int("refresh", cfg.TickRate))

	if viper.GetBool("terminal") {
		term, err := terminal.New(cfg.Colors, logger)
		if err != nil {
			return fmt.Errorf("initializing terminal: %w", err)
		}
		return term.Run(emu)
	}

	buzzer, err := audio.NewBuzzer()
	if err != nil {
		logger.Warn("audio unavailable", log.Err(err))
		buzzer = nil
	}

	win, err := screen.New("gochip8", cfg.Colors, logger)
	if err != nil {
		return err
	}
	return win.Run(emu, buzzer)
}

// buildQuirks starts from the selected profile and applies any individual
// quirk keys found in the config file.
func buildQuirks() cpu.Quirks {
	quirks := cpu.DefaultQuirks()
	if viper.GetBool("superchip") {
		quirks = cpu.SuperChipQuirks()
	}

	for key, target := range map[string]*bool{
		"quirks.shift-vy":     &quirks.ShiftUsesVY,
		"quirks.increment-i":  &quirks.IncrementI,
		"quirks.jump-vx":      &quirks.JumpWithVX,
		"quirks.wrap-sprites": &quirks.WrapSprites,
		"quirks.vblank-wait":  &quirks.VBlankWait,
		"quirks.reset-vf":     &quirks.ResetVF,
	} {
		if viper.IsSet(key) {
			*target = viper.GetBool(key)
		}
	}
	quirks.StackLimit = viper.GetInt("quirks.stack-limit")

	return quirks
}

func newLogger(debug bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	}
	return log.NewWithConfig(cfg)
}

// The SUPER-CHIP user flags survive across sessions in a data file under
// the home directory.
func rplPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".gochip8", "rpl_user_flags.dat"), nil
}

func loadRPLFlags() [8]uint8 {
	var flags [8]uint8
	path, err := rplPath()
	if err != nil {
		return flags
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return flags
	}
	copy(flags[:], data)
	return flags
}

func saveRPLFlags(logger *log.Logger, emu *cpu.EMU) {
	path, err := rplPath()
	if err != nil {
		logger.Warn("cannot locate home directory", log.Err(err))
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.Warn("cannot create data directory", log.Err(err))
		return
	}
	flags := emu.RPLFlags()
	if err := os.WriteFile(path, flags[:], 0o644); err != nil {
		logger.Warn("cannot save user flags", log.Err(err))
	}
}
