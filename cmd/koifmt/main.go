// Command koifmt is a thin demonstration consumer of the koi package's
// public parser/writer surface (spec.md §6 "Library API caller surface").
// It is a collaborator, not part of the core engine — it exists only to
// exercise the library end to end, in the cobra + logrus idiom
// unikraft-kraftkit's command tree uses.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/koilang/koi"
)

var log = logrus.New()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		threshold    int
		skipAnnos    bool
		compact      bool
		encodingName string
		strategyName string
	)

	cmd := &cobra.Command{
		Use:   "koifmt [file]",
		Short: "Parse and re-emit a KoiLang source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(args[0], threshold, skipAnnos, compact, encodingName, strategyName)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&threshold, "threshold", 1, "command threshold (leading # count classified as a command)")
	flags.BoolVar(&skipAnnos, "skip-annotations", false, "drop annotation lines instead of round-tripping them")
	flags.BoolVar(&compact, "compact", false, "collapse composite separators in the output")
	flags.StringVar(&encodingName, "encoding", "", "decode the input from this codec name (e.g. utf-16, gbk) instead of assuming UTF-8")
	flags.StringVar(&strategyName, "on-invalid", "replace", "strict|replace|ignore: how to handle invalid bytes when --encoding is set")

	return cmd
}

func runFormat(path string, threshold int, skipAnnos, compact bool, encodingName, strategyName string) error {
	src, closer, err := openSource(path, encodingName, strategyName)
	if err != nil {
		log.WithField("file", path).WithError(err).Error("failed to open source")
		return err
	}
	if closer != nil {
		defer closer()
	}

	cfg := koi.DefaultParserConfig()
	cfg.CommandThreshold = threshold
	cfg.SkipAnnotations = skipAnnos
	p := koi.NewParser(src, cfg)

	wcfg := koi.DefaultWriterConfig()
	wcfg.CommandThreshold = threshold
	wcfg.GlobalOptions.Compact = compact
	sink := koi.NewBufferSink()
	w := koi.NewWriter(sink, wcfg)

	count := 0
	for {
		cmd, ok := p.NextCommand()
		if !ok {
			if e := p.Error(); e != nil {
				log.WithFields(logrus.Fields{
					"source": e.Source,
					"line":   e.Line,
					"col":    e.Col,
					"kind":   e.Kind.String(),
				}).Error(e.Message)
				return e
			}
			break
		}
		if err := w.WriteCommand(cmd); err != nil {
			log.WithError(err).Error("failed to write command")
			return err
		}
		count++
	}
	log.WithField("commands", count).Info("parsed")
	fmt.Fprint(os.Stdout, sink.Content())
	return nil
}

func openSource(path, encodingName, strategyName string) (koi.InputSource, func(), error) {
	if encodingName == "" {
		src, err := koi.NewFileSource(path)
		if err != nil {
			return nil, nil, err
		}
		return src, func() { src.Close() }, nil
	}
	strategy, err := parseStrategy(strategyName)
	if err != nil {
		return nil, nil, err
	}
	src, err := koi.NewEncodedFileSource(path, encodingName, strategy)
	if err != nil {
		return nil, nil, err
	}
	return src, func() { src.Close() }, nil
}

func parseStrategy(name string) (koi.ErrorStrategy, error) {
	switch name {
	case "strict":
		return koi.StrategyStrict, nil
	case "replace", "":
		return koi.StrategyReplace, nil
	case "ignore":
		return koi.StrategyIgnore, nil
	default:
		return 0, fmt.Errorf("unknown --on-invalid strategy %q", name)
	}
}
