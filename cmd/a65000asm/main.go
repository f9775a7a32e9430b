// Command a65000asm reads an A65000 assembly source file, assembles it,
// and writes the resulting segments out as an RSX0 container.
package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zmajoros/a65000asm/asm"
	"github.com/zmajoros/a65000asm/container"
)

var (
	outPath string
	verbose bool
	dump    bool

	log = logrus.New()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "a65000asm <source>",
	Short: "Assemble A65000 source into an RSX0 binary",
	Args:  cobra.ExactArgs(1),
	RunE:  run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&outPath, "out", "o", "out.rsx", "output container path")
	flags.BoolVarP(&verbose, "verbose", "v", false, "print a per-segment summary on success")
	flags.BoolVar(&dump, "dump", false, "also print resolved symbols (implies --verbose)")

	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: false})
}

func run(cmd *cobra.Command, args []string) error {
	sourcePath := args[0]

	src, err := os.ReadFile(sourcePath)
	if err != nil {
		log.WithError(err).Fatal("cannot read source file")
	}

	assembler := asm.New()
	segs, err := assembler.Assemble(string(src))
	if err != nil {
		reportFailure(sourcePath, err)
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		log.WithError(err).Fatal("cannot create output file")
	}
	defer out.Close()

	if err := container.Write(out, segs); err != nil {
		log.WithError(err).Fatal("cannot write container")
	}

	if verbose || dump {
		for _, seg := range segs {
			log.WithFields(logrus.Fields{
				"base":   fmt.Sprintf("$%08x", seg.Base),
				"length": len(seg.Data),
			}).Info("segment")
		}
	}

	if dump {
		symbols := assembler.Symbols()
		names := make([]string, 0, len(symbols))
		for name := range symbols {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			log.WithFields(logrus.Fields{
				"symbol":  name,
				"address": fmt.Sprintf("$%08x", symbols[name]),
			}).Info("symbol")
		}
	}

	log.WithFields(logrus.Fields{
		"source":   sourcePath,
		"out":      outPath,
		"segments": len(segs),
	}).Info("assembly complete")
	return nil
}

// reportFailure prints the "Assembly error in line N" diagnostic line
// when the error carries a source line number, then logs the
// structured form.
func reportFailure(sourcePath string, err error) {
	var asmErr *asm.Error
	if errors.As(err, &asmErr) && asmErr.Line > 0 {
		fmt.Fprintf(os.Stderr, "Assembly error in line %d: %q\n", asmErr.Line, asmErr.Error())
		fmt.Fprintln(os.Stderr, asmErr.Text)
	}
	log.WithFields(logrus.Fields{
		"source": sourcePath,
	}).WithError(err).Error("assembly failed")
}
