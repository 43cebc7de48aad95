package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/five82/vogue/internal/api"
)

type formKind int

const (
	formLogin formKind = iota
	formSignup
	formProduct
)

func (k formKind) title() string {
	switch k {
	case formSignup:
		return "Sign up"
	case formProduct:
		return "New product"
	default:
		return "Log in"
	}
}

type formField struct {
	label string
	input textinput.Model
}

// form is a vertical stack of labelled text inputs with one focused field.
type form struct {
	kind   formKind
	fields []formField
	focus  int
}

func newForm(kind formKind) *form {
	var labels []string
	secret := map[string]bool{}
	switch kind {
	case formLogin:
		labels = []string{"Username", "Password"}
		secret["Password"] = true
	case formSignup:
		labels = []string{"First name", "Last name", "Username", "Email", "Password", "Confirm password"}
		secret["Password"] = true
		secret["Confirm password"] = true
	case formProduct:
		labels = []string{"Name", "Category", "Price", "Stock", "Sizes", "Culture", "Tags", "Description", "Image", "Featured"}
	}

	f := &form{kind: kind}
	for _, label := range labels {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 256
		if secret[label] {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		switch label {
		case "Category":
			in.Placeholder = "clothing, music or accessories"
		case "Sizes", "Tags":
			in.Placeholder = "comma separated"
		case "Featured":
			in.Placeholder = "y/n"
		}
		f.fields = append(f.fields, formField{label: label, input: in})
	}
	f.fields[0].input.Focus()
	return f
}

func (f *form) setFocus(i int) {
	n := len(f.fields)
	f.fields[f.focus].input.Blur()
	f.focus = ((i % n) + n) % n
	f.fields[f.focus].input.Focus()
}

func (f *form) next() { f.setFocus(f.focus + 1) }
func (f *form) prev() { f.setFocus(f.focus - 1) }

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

func (f *form) value(label string) string {
	for _, field := range f.fields {
		if field.label == label {
			return strings.TrimSpace(field.input.Value())
		}
	}
	return ""
}

func (f *form) set(label, value string) {
	for i := range f.fields {
		if f.fields[i].label == label {
			f.fields[i].input.SetValue(value)
		}
	}
}

func (f *form) credentials() api.Credentials {
	return api.Credentials{
		Username: f.value("Username"),
		Password: f.value("Password"),
	}
}

func (f *form) signupData() (api.SignupData, error) {
	data := api.SignupData{
		FirstName:       f.value("First name"),
		LastName:        f.value("Last name"),
		Username:        f.value("Username"),
		Email:           f.value("Email"),
		Password:        f.value("Password"),
		ConfirmPassword: f.value("Confirm password"),
	}
	if data.Username == "" || data.Password == "" {
		return data, errors.New("username and password are required")
	}
	if data.Password != data.ConfirmPassword {
		return data, errors.New("passwords do not match")
	}
	return data, nil
}

func (f *form) productDraft() (api.ProductDraft, error) {
	draft := api.ProductDraft{
		Name:        f.value("Name"),
		Category:    api.Category(strings.ToLower(f.value("Category"))),
		Sizes:       splitList(f.value("Sizes")),
		Culture:     f.value("Culture"),
		Tags:        splitList(f.value("Tags")),
		Description: f.value("Description"),
		Image:       f.value("Image"),
		Featured:    parseYes(f.value("Featured")),
	}
	if draft.Name == "" {
		return draft, errors.New("name is required")
	}
	if !draft.Category.Valid() {
		return draft, fmt.Errorf("unknown category %q", draft.Category)
	}
	price, err := decimal.NewFromString(f.value("Price"))
	if err != nil {
		return draft, fmt.Errorf("invalid price %q", f.value("Price"))
	}
	if price.IsNegative() {
		return draft, errors.New("price cannot be negative")
	}
	draft.Price = price
	if raw := f.value("Stock"); raw != "" {
		stock, err := strconv.Atoi(raw)
		if err != nil || stock < 0 {
			return draft, fmt.Errorf("invalid stock %q", raw)
		}
		draft.Stock = stock
	}
	return draft, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseYes(raw string) bool {
	switch strings.ToLower(raw) {
	case "y", "yes", "true", "1":
		return true
	}
	return false
}
