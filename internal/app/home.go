package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/odyssey-erp/bizdesk/internal/i18n"
	"github.com/odyssey-erp/bizdesk/internal/listing"
	"github.com/odyssey-erp/bizdesk/internal/view"
)

// HomeCard summarises one resource on the dashboard.
type HomeCard struct {
	Path  string
	Label string
	Count string
}

type homeHandler struct {
	logger    *slog.Logger
	resources *listing.Registry
	templates *view.Engine
	layout    *view.Layout
}

func (h homeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	td := h.layout.Data(r, "app.home", nil)
	cards := h.cards(r.Context(), td.Catalog)
	td.Data = map[string]any{"Cards": cards}
	if err := h.templates.Render(w, "pages/home.html", td); err != nil {
		h.logger.Error("render home", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// cards loads every resource concurrently. A failing loader leaves its
// count blank rather than failing the page.
func (h homeHandler) cards(ctx context.Context, cat *i18n.Catalog) []HomeCard {
	all := h.resources.All()
	cards := make([]HomeCard, len(all))
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, res := range all {
		cards[i] = HomeCard{Path: res.Path(), Label: cat.T(res.TitleKey), Count: "-"}
		g.Go(func() error {
			rows, err := res.Load(gctx)
			if err != nil {
				h.logger.Warn("home count", slog.String("resource", res.Name), slog.Any("error", err))
				return nil
			}
			cards[i].Count = cat.Printer().Sprintf("%d", len(rows))
			return nil
		})
	}
	_ = g.Wait()
	return cards
}
