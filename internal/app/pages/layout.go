// Package pages holds the site's templ components. Pages are built directly
// with templ.ComponentFunc rather than generated files, so the view layer
// stays a plain Go package with no codegen step.
package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-shopfront/internal/app/models"
)

func esc(s string) string { return templ.EscapeString(s) }

// LayoutPage wraps content in the site chrome: head, nav, flash banners,
// footer. Flash banners render from the request's drained view only; the
// layout never reaches back into session state.
func LayoutPage(data models.LayoutTempl) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprintf(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		fmt.Fprintf(w, `<title>%s</title><link rel="stylesheet" href="/assets/css/styles.css"></head><body>`, esc(data.Title))

		fmt.Fprint(w, `<header class="site-header"><a class="brand" href="/">Shopfront</a><nav><ul>`)
		for _, item := range data.Nav.Items {
			class := ""
			if item.Name == data.ActiveNav {
				class = ` class="active"`
			}
			fmt.Fprintf(w, `<li%s><a href="%s">%s</a></li>`, class, esc(item.URL), esc(item.Name))
		}
		fmt.Fprint(w, `</ul></nav><div class="account-nav">`)
		if data.User != nil {
			fmt.Fprintf(w, `<span class="user-email">%s</span>`, esc(data.User.Email))
			fmt.Fprint(w, `<form method="post" action="/accounts/logout"><button type="submit">Log out</button></form>`)
		} else {
			fmt.Fprint(w, `<a href="/accounts/login">Log in</a> <a href="/accounts/register">Register</a>`)
		}
		fmt.Fprint(w, `</div></header>`)

		if err := FlashBanners(data.Flashes).Render(ctx, w); err != nil {
			return err
		}

		fmt.Fprint(w, `<main class="content">`)
		if data.Content != nil {
			if err := data.Content.Render(ctx, w); err != nil {
				return err
			}
		}
		fmt.Fprint(w, `</main>`)

		fmt.Fprint(w, `<footer class="site-footer"><p>Shopfront</p></footer></body></html>`)
		return nil
	})
}

// FlashBanners renders the drained flash messages in enqueue order.
func FlashBanners(flashes []models.FlashView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if len(flashes) == 0 {
			return nil
		}
		fmt.Fprint(w, `<div class="flash-messages">`)
		for _, f := range flashes {
			fmt.Fprintf(w, `<div class="flash flash-%s" role="status">%s</div>`, esc(f.Type), esc(f.Message))
		}
		fmt.Fprint(w, `</div>`)
		return nil
	})
}
