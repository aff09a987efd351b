package cli

import (
	"fmt"
	"strings"

	"github.com/raphaelgruber/rebuttal-go/internal/models"
	"github.com/spf13/cobra"
)

var (
	debateCategory string
	debateMode     string
	debateLength   string
	debateSide     string
)

var debateCmd = &cobra.Command{
	Use:   "debate <topic>",
	Short: "Start an interactive debate",
	Long: `Start an interactive debate on the given topic. The AI opponent takes
the opposite side and opens with a statement; end the debate at any time
with Esc to get your score.

Examples:
  rebuttal debate "Universal basic income should be adopted"
  rebuttal debate "Homework should be banned" --side oppose
  rebuttal debate "Nuclear energy is the future" --mode competitive --length detailed`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDebate,
}

func init() {
	debateCmd.Flags().StringVarP(&debateCategory, "category", "c", "Custom", "topic category")
	debateCmd.Flags().StringVarP(&debateMode, "mode", "m", "casual", "debate mode (casual, competitive, exam)")
	debateCmd.Flags().StringVarP(&debateLength, "length", "l", "medium", "opponent response length (short, medium, detailed)")
	debateCmd.Flags().StringVarP(&debateSide, "side", "s", "support", "your side (support, oppose)")
}

func runDebate(cmd *cobra.Command, args []string) error {
	topic := strings.Join(args, " ")

	userSide, err := parseSide(debateSide)
	if err != nil {
		return err
	}
	mode, err := parseMode(debateMode)
	if err != nil {
		return err
	}
	length, err := parseLength(debateLength)
	if err != nil {
		return err
	}

	debateConfig := models.DebateConfig{
		Topic:          topic,
		Category:       debateCategory,
		Mode:           mode,
		ResponseLength: length,
		UserSide:       userSide,
		AISide:         userSide.Opposite(),
	}

	svc, err := getDebateService()
	if err != nil {
		return err
	}

	return runChat(svc, debateConfig)
}

func parseSide(s string) (models.Side, error) {
	switch strings.ToLower(s) {
	case "support", "for":
		return models.SideSupport, nil
	case "oppose", "against":
		return models.SideOppose, nil
	default:
		return "", fmt.Errorf("unknown side %q (support, oppose)", s)
	}
}

func parseMode(s string) (models.Mode, error) {
	switch strings.ToLower(s) {
	case "casual":
		return models.ModeCasual, nil
	case "competitive":
		return models.ModeCompetitive, nil
	case "exam", "exam-preparation":
		return models.ModeExamPreparation, nil
	default:
		return "", fmt.Errorf("unknown mode %q (casual, competitive, exam)", s)
	}
}

func parseLength(s string) (models.ResponseLength, error) {
	switch strings.ToLower(s) {
	case "short":
		return models.LengthShort, nil
	case "medium":
		return models.LengthMedium, nil
	case "detailed", "long":
		return models.LengthDetailed, nil
	default:
		return "", fmt.Errorf("unknown response length %q (short, medium, detailed)", s)
	}
}
