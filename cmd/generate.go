package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/masnyjimmy/asyncdocket/compilation"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

var ErrUnknownFormat = errors.New("unknown output format")

func newGenerateCmd(a *app) *cobra.Command {
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an AsyncAPI document from a docket file",
		Long: `Generate reads a docket file, validates it and writes the AsyncAPI document.

The output format follows the output file extension (.json, .yaml, .yml)
unless --format is given. Use "-" as output to write to stdout.

Exit codes: 1 read, 2 validate, 3 parse, 4 compile, 5 write.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, _ := cmd.Flags().GetString("input")
			output, _ := cmd.Flags().GetString("output")
			format, _ := cmd.Flags().GetString("format")

			return a.generate(cmd, input, output, format)
		},
	}

	generateCmd.Flags().StringP("input", "i", "docket.yaml", "Docket file")
	generateCmd.Flags().StringP("output", "o", "asyncapi.yaml", "Output filepath")
	generateCmd.Flags().StringP("format", "f", "", "Output format (json, yaml)")
	generateCmd.MarkFlagFilename("input", "yaml", "yml")
	generateCmd.MarkFlagFilename("output", "yaml", "yml", "json")

	return generateCmd
}

func outputFormat(output, format string) (string, error) {
	switch strings.ToLower(format) {
	case formatJSON:
		return formatJSON, nil
	case formatYAML, "yml":
		return formatYAML, nil
	case "":
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if strings.EqualFold(filepath.Ext(output), ".json") {
		return formatJSON, nil
	}
	return formatYAML, nil
}

func (a *app) generate(cmd *cobra.Command, input, output, format string) error {
	log := a.log.WithFields(logrus.Fields{"input": input, "output": output})

	format, err := outputFormat(output, format)
	if err != nil {
		return exitWith(exitConfig, err)
	}
	log = log.WithField("format", format)

	log.Debug("reading docket")
	d, err := readDocket(input)
	if err != nil {
		return err
	}

	log.Debug("compiling document")
	doc, err := compileDocket(d)
	if err != nil {
		return err
	}

	var bytes []byte
	if format == formatJSON {
		bytes, err = compilation.MarshalJSON(doc)
	} else {
		bytes, err = compilation.MarshalYAML(doc)
	}
	if err != nil {
		return exitWith(exitCompile, err)
	}

	if output == "-" {
		if _, err := cmd.OutOrStdout().Write(bytes); err != nil {
			return exitWith(exitWrite, err)
		}
		return nil
	}

	if err := os.WriteFile(output, bytes, 0o644); err != nil {
		return exitWith(exitWrite, fmt.Errorf("unable to write file %q: %w", output, err))
	}

	log.WithField("channels", len(doc.Channels)).Info("document written")
	return nil
}
