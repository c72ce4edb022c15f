package web

import (
	"bytes"
	"html/template"

	"github.com/jaminalder/tic-tac-toe-history/internal/app"
	"github.com/jaminalder/tic-tac-toe-history/internal/domain"
)

type templates struct {
	page *template.Template
	game *template.Template
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"statusClass": func(o domain.Outcome) string {
			switch o {
			case domain.Won:
				return "status status-won"
			case domain.Drawn:
				return "status status-drawn"
			default:
				return "status"
			}
		},
		"squareClass": func(winning bool) string {
			if winning {
				return "square square-winner"
			}
			return "square"
		},
	}
}

func loadTemplates() *templates {
	game := template.Must(template.New("game").Funcs(funcs()).Parse(gameTemplate))
	page := template.Must(template.Must(game.Clone()).New("page").Parse(pageTemplate))
	return &templates{page: page, game: game}
}

func renderTemplate(t *template.Template, name string, data any) []byte {
	var buf bytes.Buffer
	if name == "" {
		_ = t.Execute(&buf, data)
	} else {
		_ = t.ExecuteTemplate(&buf, name, data)
	}
	return buf.Bytes()
}

// gameData is what the game fragment renders from.
type gameData struct {
	app.Snapshot
}

const pageTemplate = `<!doctype html><html><head>
<meta charset="utf-8"/>
<title>Tic-Tac-Toe</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org@1.9.12/dist/ext/sse.js"></script>
<style>
.square{width:34px;height:34px;font-weight:bold;font-size:24px}
.square-winner{background:#ff0}
.status-won,.status-drawn{font-weight:bold}
.corner,.row-number,.col-number{display:inline-block;width:34px;text-align:center}
</style>
</head><body>
<div hx-ext="sse" sse-connect="/events">
  <div sse-swap="game" hx-target="#game" hx-swap="outerHTML"></div>
  {{template "game" .}}
</div>
</body></html>`

const gameTemplate = `<div id="game" class="game" data-version="{{.Version}}">
  <div class="game-board">
    <div class="{{statusClass .View.Outcome}}">{{.View.Status}}</div>
    <div class="board-row">
      <div class="corner"></div><div class="col-number">1</div><div class="col-number">2</div><div class="col-number">3</div>
    </div>
    {{range $row := .View.Rows}}
    <div class="board-row">
      <div class="row-number">{{(index $row 0).Row}}</div>
      {{range $row}}<button class="{{squareClass .Winning}}" hx-post="/play/{{.Index}}" hx-target="#game" hx-swap="outerHTML">{{.Mark}}</button>{{end}}
    </div>
    {{end}}
  </div>
  <div class="game-info">
    <button hx-post="/sort" hx-target="#game" hx-swap="outerHTML">{{.View.SortToggle}}</button>
    <ol>
      {{range .View.Moves}}
      <li>{{if .IsCurrent}}<span>{{.CurrentText}}</span>{{else}}<button hx-post="/jump/{{.Index}}" hx-target="#game" hx-swap="outerHTML">{{.Label}}</button>{{end}}</li>
      {{end}}
    </ol>
  </div>
</div>`
