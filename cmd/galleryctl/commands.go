package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rishidar/freelance-connector/internal/catalog"
	"github.com/rishidar/freelance-connector/internal/loader"
	"github.com/rishidar/freelance-connector/internal/service"
	"github.com/rishidar/freelance-connector/internal/source"
)

var categoriesFile string

const inspectConcurrency = 4

// errLoadFailed - источник категории не загрузился.
var errLoadFailed = errors.New("загрузка категории завершилась ошибкой")

func newCategoriesCmd() *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Показать таблицу категорий галерей",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := catalog.Load(categoriesFile)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asYAML {
				raw, err := registry.Marshal()
				if err != nil {
					return err
				}
				_, err = out.Write(raw)
				return err
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SLUG\tKIND\tRESOURCE\tROUTE")
			for _, def := range registry.All() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", def.Slug, def.Kind, def.Resource, def.Route())
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "вывести таблицу в формате YAML")
	return cmd
}

func newInspectCmd() *cobra.Command {
	var (
		dataDir string
		baseURL string
		timeout time.Duration
		all     bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [slug...]",
		Short: "Загрузить xlsx категорий и показать записи и предупреждения",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := catalog.Load(categoriesFile)
			if err != nil {
				return err
			}

			slugs := args
			if all {
				slugs = nil
				for _, def := range registry.All() {
					slugs = append(slugs, def.Slug)
				}
			}
			if len(slugs) == 0 {
				return errors.New("укажите slug категории или --all")
			}

			galleries := service.NewGalleryService(registry, source.New(dataDir, baseURL, timeout))
			results, err := inspectAll(cmd.Context(), galleries, slugs)
			if err != nil {
				return err
			}

			var failed bool
			for i, res := range results {
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				if err := printResult(cmd.OutOrStdout(), res); err != nil {
					if !errors.Is(err, errLoadFailed) {
						return err
					}
					failed = true
				}
			}
			if failed {
				return errLoadFailed
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dataDir, "data-dir", envOr("DATA_DIR", "./public/data"), "каталог с xlsx файлами")
	cmd.Flags().StringVar(&baseURL, "base-url", os.Getenv("DATA_BASE_URL"), "базовый URL xlsx файлов (вместо каталога)")
	cmd.Flags().DurationVar(&timeout, "timeout", 15*time.Second, "таймаут загрузки по HTTP")
	cmd.Flags().BoolVar(&all, "all", false, "проверить все категории")
	return cmd
}

// inspectAll загружает категории параллельно; порядок результатов совпадает с slugs.
func inspectAll(ctx context.Context, galleries *service.GalleryService, slugs []string) ([]loader.Result, error) {
	results := make([]loader.Result, len(slugs))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(inspectConcurrency)
	for i, slug := range slugs {
		i, slug := i, slug
		eg.Go(func() error {
			res, err := galleries.Inspect(egCtx, slug)
			if err != nil {
				return fmt.Errorf("%s: %w", slug, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func printResult(out io.Writer, res loader.Result) error {
	fmt.Fprintf(out, "category: %s\nstatus: %s\nrecords: %d\n", res.Category, res.Status(), len(res.Records))
	if res.Status() == loader.StatusFailed {
		fmt.Fprintf(out, "reason: %s\n", res.Reason())
	}

	if len(res.Records) > 0 {
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ROW\tID\tCREATOR\tTITLE\tMEDIA")
		for _, r := range res.Records {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n", r.SourceRow, r.ID, r.Creator, r.Title, len(r.Media))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	for _, w := range res.Warnings {
		fmt.Fprintf(out, "warning: row %d: %s\n", w.Row, w.Message)
	}

	if res.Status() == loader.StatusFailed {
		return errLoadFailed
	}
	return nil
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password",
		Short: "Прочитать пароль из stdin и вывести bcrypt хэш для ADMIN_PASSWORD_HASH",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				return err
			}
			hash, err := service.HashPassword(strings.TrimRight(line, "\r\n"))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
