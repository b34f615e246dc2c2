// Command seed_recipes imports sample recipes for a development user and
// prints a bearer token for that user.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-import/backend/config"
	"github.com/pageza/alchemorsel-import/backend/internal/database"
	"github.com/pageza/alchemorsel-import/backend/internal/logger"
	"github.com/pageza/alchemorsel-import/backend/internal/metrics"
	"github.com/pageza/alchemorsel-import/backend/internal/service"
)

var sampleRecipes = []string{
	"🍝 Spaghetti Aglio e Olio\n" +
		"520 kcal ・ 20 Min ・ Einfach\n" +
		"Der italienische Klassiker mit Knoblauch, Chili und gutem Olivenöl für jeden Tag.\n" +
		"Zutaten für 2 Portionen:\n" +
		"Spaghetti (250 g)・Knoblauchzehe (3 Stk)・Olivenöl (4 EL)・Chiliflocken (½ TL)・Petersilie (etwas)\n" +
		"Anleitung für 2 Portionen:\n" +
		"1. Spaghetti in Salzwasser bissfest kochen\n" +
		"2. Knoblauch in Scheiben schneiden und im Öl anschwitzen\n" +
		"3. Chili zugeben und die Nudeln im Öl schwenken\n" +
		"Lass es dir schmecken!",
	"🥞 Pfannkuchen\n" +
		"380 kcal ・ 25 Min ・ Einfach\n" +
		"Fluffige Pfannkuchen wie bei Oma, süß mit Apfelmus oder herzhaft mit Käse.\n" +
		"Zutaten für 4 Portionen:\n" +
		"Mehl (250 g)・Milch (0,5 l)・Ei (3 Stk)・Zucker (1 ⅔ EL)・Salz (1 Prise)\n" +
		"Anleitung für 4 Portionen:\n" +
		"1. Alle Zutaten zu einem glatten Teig verrühren\n" +
		"2. Teig 10 Minuten quellen lassen\n" +
		"3. Portionsweise in einer Pfanne goldbraun backen",
	"🥗 Linsensalat\n" +
		"410 kcal ・ 30 Min ・ Mittel\n" +
		"Zutaten für 2 Portionen:\n" +
		"Linsen (150 g)・Paprika (1 Stk)・Zwiebel (½)・Essig (2 EL)\n" +
		"Anleitung für 2 Portionen:\n" +
		"1. Linsen garen und abkühlen lassen\n" +
		"2. Gemüse würfeln und alles mit Essig marinieren",
}

func main() {
	if err := newCommand(os.Stdout).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newCommand(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "seed_recipes",
		Usage:     "Import sample recipes for a development user",
		ArgsUsage: "[FILE...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "user",
				Usage: "user id to import for (a new id is generated when empty)",
			},
			&cli.DurationFlag{
				Name:  "token-ttl",
				Value: 24 * time.Hour,
				Usage: "lifetime of the printed bearer token",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			log, err := logger.New(logger.Config{
				Level:       cfg.LogLevel,
				Format:      cfg.LogFormat,
				ServiceName: "seed_recipes",
				Environment: string(cfg.Environment),
			})
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			userID := uuid.New()
			if s := cmd.String("user"); s != "" {
				if userID, err = uuid.Parse(s); err != nil {
					return fmt.Errorf("invalid user id: %w", err)
				}
			}

			texts := sampleRecipes
			if cmd.Args().Len() > 0 {
				if texts, err = readFiles(cmd.Args().Slice()); err != nil {
					return err
				}
			}

			db, err := database.New(cfg, log)
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return err
			}

			m := metrics.New()
			recipes := service.NewRecipeService(db, service.NewParseService(nil, m, log, cfg.MaxTextBytes), m, log)
			ids, err := seed(ctx, recipes, userID, texts)
			if err != nil {
				return err
			}

			token, err := service.NewTokenService(cfg.JWTSecret).GenerateToken(userID, "seed", cmd.Duration("token-ttl"))
			if err != nil {
				return err
			}

			log.Info("seeded recipes", zap.String("user_id", userID.String()), zap.Int("count", len(ids)))
			_, err = fmt.Fprintf(stdout, "user_id=%s\ntoken=%s\n", userID, token)
			return err
		},
	}
}

// seed imports every text for userID and returns the ids of the stored
// recipes.
func seed(ctx context.Context, recipes service.IRecipeService, userID uuid.UUID, texts []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(texts))
	for i, text := range texts {
		recipe, err := recipes.Import(ctx, userID, text)
		if err != nil {
			return ids, fmt.Errorf("failed to import recipe %d: %w", i+1, err)
		}
		ids = append(ids, recipe.ID)
	}
	return ids, nil
}

func readFiles(paths []string) ([]string, error) {
	texts := make([]string, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %q: %w", path, err)
		}
		texts = append(texts, string(data))
	}
	return texts, nil
}
