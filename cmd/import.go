package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lshigami/qbank/internal/dto"
	"github.com/lshigami/qbank/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"gopkg.in/yaml.v3"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Bulk import questions from a JSON or YAML file",
	Long: `Reads a {"questions": [...]} document and imports it in one transaction.
Nothing is written if any question is invalid.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		replace, _ := cmd.Flags().GetBool("replace")
		return runImport(cmd.Context(), args[0], replace)
	},
}

func init() {
	importCmd.Flags().Bool("replace", false, "Soft-delete every active question in the same transaction as the import")
}

func readImportFile(path string) (dto.ImportQuestionsRequest, error) {
	var req dto.ImportQuestionsRequest
	raw, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &req)
	default:
		err = json.Unmarshal(raw, &req)
	}
	if err != nil {
		return req, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return req, nil
}

func runImport(ctx context.Context, path string, replace bool) error {
	req, err := readImportFile(path)
	if err != nil {
		return err
	}

	var questionService service.QuestionService
	app := fx.New(coreModule(), fx.Populate(&questionService))
	if err := app.Err(); err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = app.Stop(stopCtx)
	}()

	importQuestions := questionService.ImportQuestions
	if replace {
		importQuestions = questionService.ReplaceQuestions
	}
	result, err := importQuestions(ctx, req)
	if err != nil {
		return err
	}
	log.Info().Int("count", result.Imported).Str("file", path).Bool("replace", replace).Msg("Questions imported")

	stats, err := questionService.GetStats(ctx)
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(stats)
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	return nil
}
