package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/pakdecode/internal/config"
	"github.com/deploymenttheory/pakdecode/internal/extractor"
	"github.com/deploymenttheory/pakdecode/internal/hashdict"
	"github.com/deploymenttheory/pakdecode/internal/localization"
	"github.com/deploymenttheory/pakdecode/internal/logger"
	"github.com/deploymenttheory/pakdecode/internal/manifest"
	"github.com/deploymenttheory/pakdecode/internal/pak/azcs"
	"github.com/deploymenttheory/pakdecode/internal/pak/oodle"
	"github.com/deploymenttheory/pakdecode/internal/walker"
)

var (
	cfgFile string
	cfg     config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pakextract",
		Short: "Extract and transcode game-engine pak archives",
		Long: `pakextract walks a directory of pak archives, decodes each entry's
codec and payload layers, and writes it to an output tree in a
user-selected representation (raw bytes, JSON, YAML, CSV, SQL, XML).`,
		PersistentPreRun: setupLogging,
		RunE:             runExtract,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is none)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose debugging output")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().String("log-file", "", "log to file instead of stdout")

	rootCmd.Flags().StringP("input", "i", "", "directory to scan for pak archives (required)")
	rootCmd.MarkFlagRequired("input")
	rootCmd.Flags().StringP("output", "o", "./extracted", "output directory for transcoded entries")
	rootCmd.Flags().String("manifest", "manifest.json", "path to the datasheet manifest file")
	rootCmd.Flags().String("localization", "", "path to a JSON localization map")
	rootCmd.Flags().String("hashdict", "", "path to a CSV hash dictionary")
	rootCmd.Flags().String("ext", ".pak", "archive filename suffix to scan for")

	rootCmd.Flags().String("datasheet-format", "mini", "datasheet output: mini|pretty|yaml|csv|bytes|sql")
	rootCmd.Flags().String("object-stream-format", "xml", "object stream output: xml|mini|pretty|bytes")
	rootCmd.Flags().String("script-bytecode-format", "raw", "script bytecode output: raw")

	rootCmd.Flags().IntP("extractor-workers", "W", 4, "number of extraction workers")

	if err := rootCmd.Execute(); err != nil {
		logger.Errorf("error executing command: %v", err)
		os.Exit(1)
	}
}

func setupLogging(cmd *cobra.Command, args []string) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		logger.SetLevel(logger.LevelDebug)
		logger.Infof("debug logging enabled")
	} else {
		logger.SetLevel(logger.LevelInfo)
	}

	noColor, _ := cmd.Flags().GetBool("no-color")
	if noColor {
		logger.DisableColors()
	}

	logFile, _ := cmd.Flags().GetString("log-file")
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			logger.Errorf("failed to open log file: %v", err)
		} else {
			logger.DisableColors()
			logger.Initialize(file, file, file, file)
			logger.Infof("logging to file: %s", logFile)
		}
	}
}

func runExtract(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = parseConfig(cmd)
	if err != nil {
		return err
	}

	overallStartTime := time.Now()
	logger.Infof("scanning %s for archives (suffix %q)", cfg.InputDir, cfg.ArchiveExtension)

	formats, err := cfg.Formats()
	if err != nil {
		return err
	}

	loc := localization.New()
	if cfg.LocalizationFile != "" {
		f, err := os.Open(cfg.LocalizationFile)
		if err != nil {
			return err
		}
		loc, err = localization.Load(f)
		f.Close()
		if err != nil {
			return err
		}
	}

	hashes := hashdict.New()
	if cfg.HashDictFile != "" {
		f, err := os.Open(cfg.HashDictFile)
		if err != nil {
			return err
		}
		hashes, err = hashdict.Load(f)
		f.Close()
		if err != nil {
			return err
		}
	}

	man, err := manifest.New(cfg.ManifestFile)
	if err != nil {
		return err
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	ext := extractor.New(cfg.ExtractorWorkers, cfg.OutputDir, formats, loc, hashes, azcs.None, oodle.Unavailable, man)
	wlk := walker.New(cfg.InputDir, cfg.ArchiveExtension, ext.Queue())

	ext.Start()

	// Run closes ext.Queue() itself when the walk ends.
	go func() {
		if err := wlk.Run(); err != nil {
			logger.Errorf("walker error: %v", err)
		}
	}()

	select {
	case <-wlk.Done():
		logger.Infof("walk complete, waiting for extraction to finish...")
		ext.Wait()
		if err := man.Close(); err != nil {
			logger.Errorf("closing manifest: %v", err)
		}
	case sig := <-signalChan:
		logger.Infof("received signal %v, shutting down gracefully...", sig)
		wlk.Stop()
		ext.Stop()
		ext.Wait()
		man.Close()
	}

	overallDuration := time.Since(overallStartTime)

	logger.Infof("pakextract completed in %v", overallDuration)
	logger.Infof("archives found: %d, files scanned: %d", wlk.Stats().ArchivesFound, wlk.Stats().FilesScanned)
	logger.Infof("entries written: %d, errors: %d", ext.Stats().EntriesWritten, ext.Stats().Errors)

	return nil
}

func parseConfig(cmd *cobra.Command) (config.Config, error) {
	var err error
	loaded := config.Config{}
	if cfgFile != "" {
		loaded, err = config.LoadFile(cfgFile)
		if err != nil {
			return config.Config{}, err
		}
	}

	result := loaded

	// Command line flags override config file, but only when the user
	// actually set them; an unset flag's default must not clobber a
	// value already present in a loaded config file.
	applyStr := func(flagName string, field *string) {
		v, _ := cmd.Flags().GetString(flagName)
		if cmd.Flags().Changed(flagName) || *field == "" {
			*field = v
		}
	}
	applyInt := func(flagName string, field *int) {
		v, _ := cmd.Flags().GetInt(flagName)
		if cmd.Flags().Changed(flagName) || *field == 0 {
			*field = v
		}
	}

	applyStr("input", &result.InputDir)
	applyStr("output", &result.OutputDir)
	applyStr("ext", &result.ArchiveExtension)
	applyStr("manifest", &result.ManifestFile)
	applyStr("localization", &result.LocalizationFile)
	applyStr("hashdict", &result.HashDictFile)
	applyStr("datasheet-format", &result.DatasheetFormat)
	applyStr("object-stream-format", &result.ObjectStreamFormat)
	applyStr("script-bytecode-format", &result.ScriptBytecodeFormat)
	applyInt("extractor-workers", &result.ExtractorWorkers)

	return result, nil
}
