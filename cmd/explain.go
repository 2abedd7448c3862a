package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/liyuwen/bankctl/internal/bank"
	"github.com/liyuwen/bankctl/internal/explain"
)

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Fill in missing explanations from category templates",
	Long: "Explain synthesizes an explanation for every record that has none,\n" +
		"using per-category templates. With --llm the text is generated by an\n" +
		"OpenAI-compatible endpoint instead, falling back to the template when\n" +
		"the request fails.",
	RunE: runExplain,
}

func init() {
	f := explainCmd.Flags()
	f.Bool("llm", false, "Generate explanations with an LLM endpoint")
	f.String("llm-url", "", "OpenAI-compatible base URL (empty uses the default)")
	f.String("llm-key", "", "API key for the LLM endpoint")
	f.String("llm-model", "gpt-4o-mini", "Model name for the LLM endpoint")
}

func runExplain(cmd *cobra.Command, _ []string) error {
	v := viperForCmd(cmd)
	lg, err := newLogger(v)
	if err != nil {
		return err
	}
	defer lg.Sync()

	b, err := bank.LoadBank(v.GetStringSlice("banks"))
	if err != nil {
		return err
	}

	var gen *explain.LLMGenerator
	if v.GetBool("llm") {
		gen = explain.NewLLMGenerator(
			v.GetString("llm-url"),
			v.GetString("llm-key"),
			v.GetString("llm-model"),
		)
	}

	filled := 0
	for _, q := range b.Records() {
		if strings.TrimSpace(q.Explanation) != "" {
			continue
		}
		if gen != nil {
			text, err := gen.Generate(cmd.Context(), *q)
			if err == nil {
				q.Explanation = text
				filled++
				continue
			}
			lg.Warn("llm generation failed, using template",
				zap.String("questionId", q.ID), zap.Error(err))
		}
		q.Explanation = explain.Synthesize(*q)
		filled++
	}

	lg.Info("explain complete", zap.Int("filled", filled), zap.Int("total", b.Len()))
	if filled == 0 {
		return nil
	}
	return b.Save()
}
