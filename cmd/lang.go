package cmd

import (
	"fmt"

	"github.com/iksnae/chatguard/internal"
	"github.com/spf13/cobra"
)

var langCmd = &cobra.Command{
	Use:   "lang [id|en]",
	Short: "Show or set the interface language",
	Long: `Without arguments, print the language in effect. With an argument,
store it as the default for future runs.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(internal.LanguageIndonesian), string(internal.LanguageEnglish)},
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()

		if len(args) == 0 {
			_, _ = fmt.Fprintln(w, currentLanguage())
			return nil
		}

		lang, err := internal.ParseLanguage(args[0])
		if err != nil {
			return err
		}

		prefs, err := internal.OpenPreferenceStore(cfg.Storage.Dir)
		if err != nil {
			return err
		}
		defer func() { _ = prefs.Close() }()

		if err := prefs.SaveLanguage(lang); err != nil {
			return err
		}
		internal.PrintSuccess(fmt.Sprintf(internal.NewTranslator(lang).T(internal.KeyLangSet), lang))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(langCmd)
}
