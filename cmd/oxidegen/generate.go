package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"goa.design/clue/log"

	"github.com/oxidegen/oxidegen/codegen"
	"github.com/oxidegen/oxidegen/diag"
	"github.com/oxidegen/oxidegen/model"
)

var (
	flagModel  string
	flagConfig string
	flagOut    string
	flagDebug  bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate SDK sources from a model",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&flagModel, "model", "", "path to the Smithy JSON AST model (required)")
	generateCmd.Flags().StringVar(&flagConfig, "config", "", "path to the YAML settings file (required)")
	generateCmd.Flags().StringVar(&flagOut, "out", "generated", "output directory")
	generateCmd.Flags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	_ = generateCmd.MarkFlagRequired("model")
	_ = generateCmd.MarkFlagRequired("config")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if flagDebug {
		ctx = log.Context(ctx, log.WithDebug())
	} else {
		ctx = log.Context(ctx)
	}

	modelBytes, err := os.ReadFile(flagModel)
	if err != nil {
		return fmt.Errorf("read model: %w", err)
	}
	graph, err := model.Load(modelBytes)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}

	configBytes, err := os.ReadFile(flagConfig)
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}
	settings, err := codegen.LoadSettings(configBytes)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	result, err := codegen.Generate(ctx, graph, settings, &codegen.Options{Sink: diag.LogSink{}})
	if err != nil {
		return err
	}

	if err := writeArtifacts(flagOut, result.Artifacts); err != nil {
		return fmt.Errorf("write artifacts: %w", err)
	}
	log.Info(ctx, log.KV{K: "msg", V: "wrote artifacts"},
		log.KV{K: "dir", V: flagOut},
		log.KV{K: "namespaces", V: len(result.Artifacts.Namespaces())})
	return nil
}

// writeArtifacts renders each namespace tree to its source path under dir.
// Layout and formatting of the content stay with the generator; this writer
// only places files.
func writeArtifacts(dir string, arts *codegen.ArtifactSet) error {
	for ns, content := range arts.Render() {
		path := filepath.Join(dir, filepath.FromSlash(codegen.FilePath(ns)))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}
