// Команда galleryctl - служебные операции над галереями работ:
// просмотр таблицы категорий, проверка xlsx источников и хэш пароля администратора.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rishidar/freelance-connector/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:           "galleryctl",
	Short:         "Служебные команды сайта-портфолио",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Setup("development")
		logger.SetOutput(cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&categoriesFile, "categories", os.Getenv("CATEGORIES_FILE"),
		"YAML файл таблицы категорий (по умолчанию встроенная таблица)")

	rootCmd.AddCommand(newCategoriesCmd())
	rootCmd.AddCommand(newInspectCmd())
	rootCmd.AddCommand(newHashPasswordCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "galleryctl:", err)
		os.Exit(1)
	}
}
