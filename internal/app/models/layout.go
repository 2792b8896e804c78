package models

import "github.com/a-h/templ"

type NavItem struct {
	Name string
	URL  string
}

type Navigation struct {
	Items []NavItem
}

// FlashView is one drained flash message, ready for rendering.
type FlashView struct {
	Type    string
	Message string
}

type LayoutTempl struct {
	Title     string
	User      *User
	Nav       Navigation
	ActiveNav string
	Flashes   []FlashView
	Content   templ.Component
}

var MainNav = Navigation{
	Items: []NavItem{
		{Name: "Home", URL: "/"},
		{Name: "Products", URL: "/products"},
		{Name: "About", URL: "/about"},
		{Name: "Contact", URL: "/contact"},
		{Name: "Dashboard", URL: "/dashboard"},
	},
}
