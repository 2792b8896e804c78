package pages

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-shopfront/internal/app/models"
)

func HomePage() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		fmt.Fprint(w, `<section class="hero"><h1>Welcome to Shopfront</h1>`)
		fmt.Fprint(w, `<p>Browse the catalog, or <a href="/products">explore a random product</a>.</p></section>`)
		return nil
	})
}

func AboutPage(skills []string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		fmt.Fprint(w, `<h1>About</h1><p>Shopfront is a small storefront for browsing and managing products.</p><ul class="skills">`)
		for _, s := range skills {
			fmt.Fprintf(w, `<li>%s</li>`, esc(s))
		}
		fmt.Fprint(w, `</ul>`)
		return nil
	})
}

func ContactPage() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		fmt.Fprint(w, `<h1>Contact</h1><p>Reach us at <a href="mailto:hello@shopfront.example">hello@shopfront.example</a>.</p>`)
		return nil
	})
}

func LoginPage() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		fmt.Fprint(w, `<h1>Login</h1>`)
		fmt.Fprint(w, `<form id="login-form" method="post" action="/accounts/login">`)
		fmt.Fprint(w, `<label>Email<input type="email" name="email" autocomplete="username" required></label>`)
		fmt.Fprint(w, `<label>Password<input type="password" name="password" autocomplete="current-password" required></label>`)
		fmt.Fprint(w, `<button type="submit">Log in</button></form>`)
		fmt.Fprint(w, `<p>No account yet? <a href="/accounts/register">Register</a>.</p>`)
		return nil
	})
}

func RegisterPage() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		fmt.Fprint(w, `<h1>Register</h1>`)
		fmt.Fprint(w, `<form id="register-form" method="post" action="/accounts/register">`)
		fmt.Fprint(w, `<label>Email<input type="email" name="email" autocomplete="email" required></label>`)
		fmt.Fprint(w, `<label>Password<input type="password" name="password" autocomplete="new-password" required minlength="8"></label>`)
		fmt.Fprint(w, `<label>Confirm password<input type="password" name="confirm_password" autocomplete="new-password" required minlength="8"></label>`)
		fmt.Fprint(w, `<button type="submit">Create account</button></form>`)
		fmt.Fprint(w, `<p>Already registered? <a href="/accounts/login">Log in</a>.</p>`)
		return nil
	})
}

func AccountDashboardPage(user models.User, loginAt time.Time) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		fmt.Fprint(w, `<h1>Account Dashboard</h1>`)
		fmt.Fprintf(w, `<p>Signed in as <strong>%s</strong>.</p>`, esc(user.Email))
		if !loginAt.IsZero() {
			fmt.Fprintf(w, `<p>Logged in at %s.</p>`, esc(loginAt.Format("January 2, 2006 at 3:04 PM")))
		}
		fmt.Fprint(w, `<p><a href="/dashboard">Manage products</a></p>`)
		return nil
	})
}

// CategoryPageProps carries everything the category listing needs.
type CategoryPageProps struct {
	Category models.CatalogCategory
	Items    []models.CatalogItem
	Display  string // "grid" or "details"
}

func CategoryPage(props CategoryPageProps) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		fmt.Fprintf(w, `<h1>Exploring %s</h1><p>%s</p>`, esc(props.Category.Name), esc(props.Category.Description))
		fmt.Fprintf(w, `<div class="display-toggle"><a href="/products/%s?display=grid">Grid</a> <a href="/products/%s?display=details">Details</a></div>`,
			esc(props.Category.ID), esc(props.Category.ID))
		fmt.Fprintf(w, `<ul class="products products-%s">`, esc(props.Display))
		for _, item := range props.Items {
			fmt.Fprintf(w, `<li><a href="/products/%s/%s">%s</a>`, esc(item.Category), esc(item.ID), esc(item.Name))
			if props.Display == "details" {
				fmt.Fprintf(w, `<p>%s</p><span class="price">$%.2f</span>`, esc(item.Description), item.Price)
			}
			fmt.Fprint(w, `</li>`)
		}
		fmt.Fprint(w, `</ul>`)
		return nil
	})
}

func ProductPage(item models.CatalogItem) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		fmt.Fprintf(w, `<article class="product"><h1>%s</h1>`, esc(item.Name))
		fmt.Fprintf(w, `<img src="%s" alt="%s">`, esc(item.Image), esc(item.Name))
		fmt.Fprintf(w, `<p>%s</p><span class="price">$%.2f</span>`, esc(item.Description), item.Price)
		fmt.Fprintf(w, `<p><a href="/products/%s">Back to category</a></p></article>`, esc(item.Category))
		return nil
	})
}

func DashboardPage(products []models.Product) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		fmt.Fprint(w, `<h1>Dashboard</h1><p><a href="/dashboard/add-product">Add a product</a></p>`)
		if len(products) == 0 {
			fmt.Fprint(w, `<p>No products yet.</p>`)
			return nil
		}
		fmt.Fprint(w, `<table class="product-table"><thead><tr><th>Name</th><th>Description</th><th>Price</th></tr></thead><tbody>`)
		for _, p := range products {
			fmt.Fprintf(w, `<tr><td>%s</td><td>%s</td><td>$%.2f</td></tr>`, esc(p.Name), esc(p.Description), p.Price)
		}
		fmt.Fprint(w, `</tbody></table>`)
		return nil
	})
}

func AddProductPage() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		fmt.Fprint(w, `<h1>Add Product</h1>`)
		fmt.Fprint(w, `<form id="add-product-form" method="post" action="/dashboard/add-product">`)
		fmt.Fprint(w, `<label>Name<input type="text" name="name"></label>`)
		fmt.Fprint(w, `<label>Description<textarea name="description"></textarea></label>`)
		fmt.Fprint(w, `<label>Price<input type="text" name="price"></label>`)
		fmt.Fprint(w, `<label>Image URL<input type="text" name="image"></label>`)
		fmt.Fprint(w, `<button type="submit">Add product</button></form>`)
		return nil
	})
}

func NotFoundPage() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		fmt.Fprint(w, `<h1>Page Not Found</h1><p>The page you requested does not exist. <a href="/">Go home</a>.</p>`)
		return nil
	})
}

// ServerErrorPage shows diagnostic detail only when the deployment opted in;
// production deployments get the generic line.
func ServerErrorPage(detail string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		fmt.Fprint(w, `<h1>Something went wrong</h1><p>An unexpected error occurred. Please try again later.</p>`)
		if detail != "" {
			fmt.Fprintf(w, `<pre class="error-detail">%s</pre>`, esc(detail))
		}
		return nil
	})
}
