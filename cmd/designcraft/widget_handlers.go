package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/lutherj1178-hash/printscreations-designer/internal/content"
	"github.com/lutherj1178-hash/printscreations-designer/internal/delivery"
)

// infoSlug is the embedded document backing the print information panel.
const infoSlug = "print-info"

// WidgetHandler renders the customizer page. Without a product_id the page
// presents the demo banner instead of the live storefront context.
func WidgetHandler(w http.ResponseWriter, r *http.Request) {
	view := buildWidgetView(r.URL.Query())
	renderPage(w, r, view)
}

// WidgetPreviewFrag re-renders the preview pane for the submitted control
// values and pushes a reloadable URL.
func WidgetPreviewFrag(w http.ResponseWriter, r *http.Request) {
	view := buildWidgetView(r.URL.Query())
	push := "/"
	if view.Query != "" {
		push = push + "?" + view.Query
	}
	w.Header().Set("HX-Push-Url", push)
	renderTemplate(w, r, "frag_widget_preview", view)
}

// planResponse is the JSON body returned by submit and cancel. The browser
// bridge executes the plan verbatim.
type planResponse struct {
	Route string        `json:"route,omitempty"`
	Plan  delivery.Plan `json:"plan"`
}

// WidgetSubmitHandler finalizes the design into a cart payload and computes
// the delivery plan for the browser-reported window relationship.
func WidgetSubmitHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	view := buildWidgetView(r.Form)
	payload := cartBuilder.Build(view.Product, view.State)

	planner := delivery.NewPlanner(formBool(r.Form, "opener"), formBool(r.Form, "framed"))
	channel, err := delivery.NewChannel(delivery.ChannelDeps{
		Window:     planner,
		CloseDelay: closeDelay,
		Logger:     appLogger,
	})
	if err != nil {
		http.Error(w, "delivery unavailable", http.StatusInternalServerError)
		return
	}

	route, err := channel.Deliver(payload, view.Product.OriginURL)
	if err != nil {
		if errors.Is(err, delivery.ErrEmptyDesignText) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
				"error": "enter design text before adding to cart",
			})
			return
		}
		http.Error(w, "delivery failed", http.StatusInternalServerError)
		return
	}

	setTrigger(w, "designcraft:submitted", map[string]string{
		"designId": payload.DesignID,
		"route":    string(route),
	})
	writeJSON(w, http.StatusOK, planResponse{Route: string(route), Plan: planner.Plan()})
}

// WidgetCancelHandler computes the close plan. Cancellation carries no
// payload and ignores the popup/frame classification.
func WidgetCancelHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	planner := delivery.NewPlanner(formBool(r.Form, "opener"), formBool(r.Form, "framed"))
	channel, err := delivery.NewChannel(delivery.ChannelDeps{
		Window:     planner,
		CloseDelay: closeDelay,
		Logger:     appLogger,
	})
	if err != nil {
		http.Error(w, "delivery unavailable", http.StatusInternalServerError)
		return
	}
	channel.Cancel()

	setTrigger(w, "designcraft:cancelled", nil)
	writeJSON(w, http.StatusOK, planResponse{Plan: planner.Plan()})
}

// WidgetInfoHandler serves the print information panel with conditional-GET
// support.
func WidgetInfoHandler(w http.ResponseWriter, r *http.Request) {
	page, err := contentSource.Page(infoSlug)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		appLogger.Error("render info panel", zap.Error(err))
		http.Error(w, "content unavailable", http.StatusInternalServerError)
		return
	}

	etag := page.ETag()
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, max-age=600")
	if !page.UpdatedAt.IsZero() {
		w.Header().Set("Last-Modified", page.UpdatedAt.UTC().Format(http.TimeFormat))
	}
	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	renderTemplate(w, r, "frag_widget_info", page)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func setTrigger(w http.ResponseWriter, event string, detail any) {
	payload := map[string]any{event: detail}
	if raw, err := json.Marshal(payload); err == nil {
		w.Header().Set("HX-Trigger", string(raw))
	}
}
