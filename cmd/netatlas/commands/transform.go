package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/netatlas/netatlas/internal/config"
	"github.com/netatlas/netatlas/internal/ingest"
	"github.com/netatlas/netatlas/internal/topology"
)

var (
	transformInput  string
	transformOutput string
	transformConfig string
	transformPretty bool
)

var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Transform a topology document into the containment hierarchy",
	Long: `Read a flat topology JSON document, build the containment hierarchy, and
write it as JSON. Use "-" for stdin/stdout.

Examples:
  # Transform a file to stdout
  netatlas transform --input topology.json

  # Pipe through, pretty-printed
  cat topology.json | netatlas transform --input - --pretty`,
	RunE: runTransform,
}

func init() {
	transformCmd.Flags().StringVar(&transformInput, "input", "-", "Input topology JSON file, or - for stdin")
	transformCmd.Flags().StringVar(&transformOutput, "output", "-", "Output hierarchy JSON file, or - for stdout")
	transformCmd.Flags().StringVar(&transformConfig, "config", "", "Path to the YAML configuration file for default policy (optional)")
	transformCmd.Flags().BoolVar(&transformPretty, "pretty", false, "Indent the JSON output")
}

func runTransform(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(transformConfig)
	if err != nil {
		return err
	}

	in, closeIn, err := openInput(transformInput)
	if err != nil {
		return err
	}
	defer closeIn()

	graph, err := ingest.DecodeGraph(in)
	if err != nil {
		return err
	}

	hierarchy := topology.TransformWithDefaults(*graph, cfg.Defaults.Policy())

	out, closeOut, err := openOutput(transformOutput)
	if err != nil {
		return err
	}
	defer closeOut()

	encoder := json.NewEncoder(out)
	encoder.SetEscapeHTML(false)
	if transformPretty {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(hierarchy); err != nil {
		return fmt.Errorf("failed to encode hierarchy: %w", err)
	}
	return nil
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
