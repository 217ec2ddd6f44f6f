// Package templates renders the create-employee page and its htmx fragments.
// Markup is kept as html/template sources and exposed as templ components so
// handlers render everything through one templ.Component path.
package templates

import (
	"html/template"

	"github.com/a-h/templ"

	"github.com/csg33k/hrnet/internal/form"
)

var pages = template.Must(template.New("pages").Funcs(template.FuncMap{
	"upper": upper,
}).Parse(`{{define "page"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.AppName}} · Create Employee</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<link rel="preconnect" href="https://fonts.googleapis.com">
<link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>
<link href="https://fonts.googleapis.com/css2?family=IBM+Plex+Mono:wght@400;500;600&family=IBM+Plex+Sans:wght@300;400;500;600&display=swap" rel="stylesheet">
<style>
  :root {
    --ink: #0d1117;
    --paper: #f5f0e8;
    --ledger: #e8e0cc;
    --accent: #c0392b;
    --accent2: #2c6e49;
    --muted: #6b5e4e;
    --rule: #b8a898;
  }
  * { box-sizing: border-box; }
  body {
    background: var(--paper);
    color: var(--ink);
    font-family: 'IBM Plex Sans', sans-serif;
    min-height: 100vh;
    margin: 0;
  }
  .card {
    background: rgba(255,255,255,0.7);
    border: 1px solid var(--ledger);
    border-left: 4px solid var(--ink);
    padding: 24px;
  }
  .field-label {
    font-family: 'IBM Plex Mono', monospace;
    font-size: 0.6rem;
    font-weight: 600;
    letter-spacing: 0.1em;
    text-transform: uppercase;
    color: var(--muted);
    display: block;
    margin-bottom: 2px;
  }
  .control { margin-bottom: 12px; }
  input, select {
    background: white;
    border: 1px solid var(--rule);
    border-bottom: 2px solid var(--ink);
    padding: 6px 8px;
    font-family: 'IBM Plex Mono', monospace;
    font-size: 0.85rem;
    width: 100%;
    outline: none;
  }
  input:focus, select:focus { border-bottom-color: var(--accent); }
  .is-invalid input, .is-invalid select { border-color: var(--accent); }
  .invalid-feedback { color: var(--accent); font-size: 0.75rem; margin-top: 2px; }
  fieldset { border: 1px solid var(--rule); padding: 12px 16px; margin: 0 0 12px; }
  legend {
    font-family: 'IBM Plex Mono', monospace;
    font-size: 0.7rem;
    font-weight: 600;
    letter-spacing: 0.18em;
    text-transform: uppercase;
    color: var(--muted);
  }
  .btn {
    font-family: 'IBM Plex Mono', monospace;
    font-weight: 600;
    font-size: 0.8rem;
    letter-spacing: 0.08em;
    padding: 8px 18px;
    border: 2px solid var(--ink);
    cursor: pointer;
    text-transform: uppercase;
  }
  .btn-primary { background: var(--ink); color: white; }
  .btn-primary:hover { background: var(--accent); border-color: var(--accent); }
  .btn-success { background: var(--accent2); color: white; border-color: var(--accent2); }
  .modal-backdrop {
    position: fixed; inset: 0;
    background: rgba(13,17,23,0.5);
    display: flex; align-items: center; justify-content: center;
  }
  .modal { background: white; border-left: 4px solid var(--accent2); padding: 24px; min-width: 320px; }
</style>
<script>
  // rejected submits come back as 422 with the annotated form
  document.addEventListener("htmx:beforeSwap", function (evt) {
    if (evt.detail.xhr.status === 422) {
      evt.detail.shouldSwap = true;
      evt.detail.isError = false;
    }
  });
</script>
</head>
<body>
<header style="background:var(--ink);color:white;padding:16px 24px;">
  <div style="font-family:'IBM Plex Mono',monospace;font-size:1.2rem;font-weight:600;letter-spacing:0.1em;">{{upper .AppName}}</div>
</header>
<main style="max-width:720px;margin:0 auto;padding:32px 24px;">
  <h1 style="font-family:'IBM Plex Mono',monospace;font-size:1.4rem;font-weight:600;">Create Employee</h1>
  {{template "form" .}}
</main>
</body>
</html>{{end}}

{{define "form"}}<div id="employee-form" class="card">
  <form hx-post="/employees" hx-target="#employee-form" hx-swap="outerHTML" novalidate>
    {{range .Fieldsets}}
      {{if .Legend}}<fieldset><legend>{{.Legend}}</legend>{{end}}
      {{range .Controls}}{{template "control" .}}{{end}}
      {{if .Legend}}</fieldset>{{end}}
    {{end}}
    <div style="margin-top:16px;display:flex;justify-content:flex-end;">
      <button type="submit" class="btn btn-primary">Save</button>
    </div>
  </form>
  {{template "confirmation" .Confirmation}}
</div>{{end}}

{{define "control"}}<div id="{{.ID}}" class="control{{if .Invalid}} is-invalid{{end}}">
  <label class="field-label" for="input-{{.Name}}">{{.Label}}</label>
  {{if eq .Kind "select"}}
  <select id="input-{{.Name}}" name="{{.Name}}" required
          hx-patch="/form/fields/{{.Name}}" hx-trigger="change" hx-target="#{{.ID}}" hx-swap="outerHTML">
    <option value=""{{if not .Value}} selected{{end}}>{{.Placeholder}}</option>
    {{range .Options}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}
  </select>
  {{else}}
  <input id="input-{{.Name}}" type="{{.Kind}}" name="{{.Name}}" value="{{.Value}}" required
         {{if .Placeholder}}placeholder="{{.Placeholder}}"{{end}}
         hx-patch="/form/fields/{{.Name}}" hx-trigger="change" hx-target="#{{.ID}}" hx-swap="outerHTML">
  {{end}}
  {{if .Invalid}}<div class="invalid-feedback">{{.Message}}</div>{{end}}
</div>{{end}}

{{define "confirmation"}}<div id="confirmation">{{if .}}
  <div class="modal-backdrop" role="dialog" aria-modal="true" aria-labelledby="confirmation-title">
    <div class="modal">
      <h2 id="confirmation-title" style="font-family:'IBM Plex Mono',monospace;font-size:1rem;margin-top:0;">{{.Title}}</h2>
      <p>{{.Message}}</p>
      <div style="display:flex;justify-content:flex-end;">
        <button type="button" class="btn btn-success"
                hx-post="/confirmation/dismiss" hx-target="#confirmation" hx-swap="outerHTML">{{.Dismiss}}</button>
      </div>
    </div>
  </div>
{{end}}</div>{{end}}`))

// Page is the full create-employee page.
func Page(v FormView) templ.Component {
	return templ.FromGoHTML(pages.Lookup("page"), v)
}

// Form is the form card, swapped in after a submit.
func Form(v FormView) templ.Component {
	return templ.FromGoHTML(pages.Lookup("form"), v)
}

// Control is one labelled input, swapped in after a field update.
func Control(c ControlView) templ.Component {
	return templ.FromGoHTML(pages.Lookup("control"), c)
}

// ConfirmationSlot renders the modal container; a nil confirmation leaves it
// empty.
func ConfirmationSlot(c *form.Confirmation) templ.Component {
	return templ.FromGoHTML(pages.Lookup("confirmation"), c)
}
