package main

import (
	"fmt"
	"html/template"
	"strings"
)

var pageFuncs = template.FuncMap{
	"join":  strings.Join,
	"score": func(f float64) string { return fmt.Sprintf("%.3f", f) },
	"pdfURL": func(file string) string {
		return "/pdf/" + file
	},
}

const pageTemplates = `
{{define "head"}}<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.}}</title>
<style>
body { font-family: sans-serif; max-width: 52rem; margin: 2rem auto; padding: 0 1rem; color: #222; }
form { display: flex; gap: .5rem; flex-wrap: wrap; margin-bottom: 1.5rem; }
input[type=text] { flex: 1; padding: .4rem; }
.result { border-bottom: 1px solid #ddd; padding: .6rem 0; }
.tag { display: inline-block; background: #eef; border-radius: 3px; padding: 0 .4rem; margin-right: .3rem; font-size: .85rem; }
.score { color: #888; font-size: .85rem; }
pre { white-space: pre-wrap; background: #f8f8f8; padding: 1rem; }
iframe { width: 100%; height: 40rem; border: 1px solid #ccc; }
</style>
</head>
<body>
{{end}}

{{define "foot"}}</body>
</html>
{{end}}

{{define "search"}}{{template "head" "問題検索"}}
<h1>問題検索</h1>
<form method="get" action="/">
  <input type="text" name="q" value="{{.Query}}" placeholder="キーワードまたは問題文">
  <select name="source">
    <option value="">すべての出典</option>
    {{range .Sources}}<option value="{{.}}"{{if eq . $.Filter.Source}} selected{{end}}>{{.}}</option>{{end}}
  </select>
  <input type="text" name="tags" value="{{join .Filter.Tags ","}}" placeholder="タグ (カンマ区切り)">
  <button type="submit">検索</button>
</form>
{{if .Searched}}
  {{if .Results}}
  {{range .Results}}
  <div class="result">
    <a href="/problems/{{.ID}}">{{.Title}}</a>
    <span class="score">{{score .Score}}</span><br>
    {{range .Tags}}<span class="tag">{{.}}</span>{{end}}
    <small>{{.Source}}</small>
  </div>
  {{end}}
  {{else}}
  <p>該当する問題はありません。</p>
  {{end}}
{{end}}
{{template "foot"}}{{end}}

{{define "problem"}}{{template "head" .Title}}
<p><a href="/">&larr; 検索に戻る</a></p>
<h1>{{.Title}}</h1>
<p>{{range .Tags}}<span class="tag">{{.}}</span>{{end}}</p>
<p>概念: {{join .Concepts "、"}}</p>
<p>出典: {{.Source}} / {{.ID}}</p>
<pre>{{.Statement}}</pre>
{{if .PDF}}
<p><a href="{{pdfURL .PDF.File}}">PDFを開く</a></p>
<iframe src="{{pdfURL .PDF.File}}"></iframe>
{{end}}
{{template "foot"}}{{end}}
`
