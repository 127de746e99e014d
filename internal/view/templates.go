package view

const siteTemplates = `
{{define "head"}}<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.}}</title>
<link rel="stylesheet" href="/static/site.css">
</head>
<body>
<header><a href="/">議員発言データベース</a></header>
<main>{{end}}

{{define "foot"}}</main>
<footer>出典: 国会会議録検索システム</footer>
</body>
</html>{{end}}

{{define "directory"}}{{template "head" "議員一覧"}}
<h1>議員一覧</h1>
<form method="get" action="/">
<input type="search" name="q" value="{{.Query}}" placeholder="議員名・かなで検索">
<button type="submit">検索</button>
</form>
{{if .Empty}}
<p class="placeholder">{{if .Query}}該当する議員が見つかりませんでした。{{else}}議員データを読み込めませんでした。{{end}}</p>
{{else}}
<table class="members">
<thead><tr><th>氏名</th><th>会派</th><th>議院</th><th>発言数</th><th>質問主意書</th></tr></thead>
<tbody>
{{range .Entries}}
<tr>
<td><a href="/members/{{.Slug}}">{{.Name}}</a>{{if .Kana}}<span class="kana">（{{.Kana}}）</span>{{end}}</td>
<td>{{.Party}}</td>
<td>{{.Chamber}}</td>
<td>{{.Speeches}}</td>
<td>{{.WrittenQuestions}}</td>
</tr>
{{end}}
</tbody>
</table>
{{end}}
{{template "foot"}}{{end}}

{{define "member"}}{{template "head" .Display.Name}}
<h1>{{.Display.Name}}{{if .Display.Kana}}<span class="kana">（{{.Display.Kana}}）</span>{{end}}</h1>
<p class="meta">
{{if .Display.Party}}{{.Display.Party}}{{end}}
{{if .Display.Chamber}} / {{.Display.Chamber}}{{end}}
</p>
{{if .Display.Socials}}
<ul class="socials">
{{range $platform, $url := .Display.Socials}}<li><a href="{{$url}}" rel="noopener">{{$platform}}</a></li>{{end}}
</ul>
{{end}}
{{if .Display.Leagues}}
<section>
<h2>議員連盟（{{.Display.LeagueCount}}）</h2>
<ul>{{range .Display.Leagues}}<li>{{.}}</li>{{end}}</ul>
</section>
{{end}}
{{if .Notice}}<p class="placeholder">{{.Notice}}</p>{{end}}
{{if .Meetings}}
<section>
<h2>発言のある会議（{{.TotalMeetings}}）</h2>
{{range .Meetings}}
<article class="meeting">
<h3>{{.Date}} {{.Name}} {{.Issue}}{{if .Session}}（第{{.Session}}回国会）{{end}}</h3>
{{if .MeetingURL}}<p><a href="{{.MeetingURL}}" rel="noopener">会議録を見る</a></p>{{end}}
<ol>
{{range .Speeches}}<li><p>{{.Summary}}</p>{{if .URL}}<a href="{{.URL}}" rel="noopener">発言全文</a>{{end}}</li>
{{end}}
</ol>
</article>
{{end}}
{{if .ShowMore}}<p><a class="load-more" href="/members/{{.Slug}}?show={{.NextShow}}">もっと見る</a></p>{{end}}
</section>
{{end}}
{{if .Questions}}
<section>
<h2>質問主意書（{{len .Questions}}）</h2>
<table class="questions">
<thead><tr><th>件名</th><th>国会</th><th>番号</th><th>状況</th><th>本文</th><th>答弁</th></tr></thead>
<tbody>
{{range .Questions}}
<tr>
<td>{{.Title}}</td>
<td>{{if .Session}}第{{.Session}}回{{end}}</td>
<td>{{.Number}}</td>
<td>{{.Status}}</td>
<td>{{if .QuestionHTMLURL}}<a href="{{.QuestionHTMLURL}}" rel="noopener">HTML</a>{{end}}
{{if .QuestionPDFURL}}<a href="{{.QuestionPDFURL}}" rel="noopener">PDF</a>{{end}}</td>
<td>{{if .AnswerHTMLURL}}<a href="{{.AnswerHTMLURL}}" rel="noopener">HTML</a>{{end}}
{{if .AnswerPDFURL}}<a href="{{.AnswerPDFURL}}" rel="noopener">PDF</a>{{end}}</td>
</tr>
{{end}}
</tbody>
</table>
</section>
{{end}}
{{template "foot"}}{{end}}

{{define "sample"}}{{template "head" "発言サンプル"}}
<h1>発言サンプル</h1>
{{if .Rows}}
<table class="sample">
<thead><tr><th>日付</th><th>会議</th><th>号</th><th>要約</th><th></th></tr></thead>
<tbody>
{{range .Rows}}
<tr>
<td>{{.Date}}</td>
<td>{{.Meeting}}</td>
<td>{{.Issue}}</td>
<td>{{.Summary}}</td>
<td>{{if .URL}}<a href="{{.URL}}" rel="noopener">全文</a>{{end}}</td>
</tr>
{{end}}
</tbody>
</table>
{{else}}
<p class="placeholder">サンプルデータがありません。</p>
{{end}}
{{template "foot"}}{{end}}

{{define "search"}}{{template "head" "発言検索"}}
<h1>発言検索</h1>
{{if .Unavailable}}
<p class="placeholder">検索は現在利用できません。</p>
{{else}}
<form method="get" action="/search">
<input type="search" name="q" value="{{.Query}}" placeholder="キーワード">
<button type="submit">検索</button>
</form>
{{if .Rows}}
<p>{{.Total}}件ヒット</p>
<table class="hits">
<thead><tr><th>日付</th><th>議員</th><th>会議</th><th>要約</th><th></th></tr></thead>
<tbody>
{{range .Rows}}
<tr>
<td>{{.Date}}</td>
<td>{{.Member}}</td>
<td>{{.Meeting}}</td>
<td>{{.Summary}}</td>
<td>{{if .URL}}<a href="{{.URL}}" rel="noopener">全文</a>{{end}}</td>
</tr>
{{end}}
</tbody>
</table>
{{else if .Query}}
<p class="placeholder">該当する発言が見つかりませんでした。</p>
{{end}}
{{end}}
{{template "foot"}}{{end}}

{{define "error"}}{{template "head" "エラー"}}
<h1>エラー</h1>
<p class="error">データの読み込みに失敗しました: {{.Message}}</p>
{{template "foot"}}{{end}}
`
