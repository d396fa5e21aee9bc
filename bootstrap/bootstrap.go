package bootstrap

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/fernandobatels/blitz-money/configuration"
	"github.com/fernandobatels/blitz-money/i18n"
	"github.com/fernandobatels/blitz-money/storage"
)

var VERSION = "dev"

// Application is everything a command needs to run.
type Application struct {
	Config  *configuration.Configuration
	Storage *storage.Storage
	Texts   *i18n.Texts
	Logger  *slog.Logger
}

// Bootstrap opens the bookkeeping file and loads the texts. The language
// comes from the configuration, then from the `::metadata::lang` line of the
// file, then i18n.DefaultLang.
func Bootstrap(c *configuration.Configuration, logOutput io.Writer) (app *Application, stop func(), err error) {

	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(logOutput, &slog.HandlerOptions{Level: level}))

	st := storage.NewStorage(c.File, logger)

	lang := c.Lang
	if lang == "" {
		stored, found, err := st.Metadata("lang")
		if err != nil {
			return nil, nil, fmt.Errorf("open '%s': %w", c.File, err)
		}
		if found {
			lang = stored
		}
	}

	texts, err := i18n.New(lang)
	if err != nil {
		st.Close()
		return nil, nil, err
	}

	logger.Debug("bootstrap", "file", c.File, "lang", texts.Lang, "version", VERSION)

	app = &Application{
		Config:  c,
		Storage: st,
		Texts:   texts,
		Logger:  logger,
	}

	stop = func() {
		err := st.Close()
		if err != nil {
			logger.Error("close storage", "err", err.Error())
		}
	}

	return app, stop, nil
}
