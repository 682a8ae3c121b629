package web

import (
	"io"
)

func layout(w io.Writer, page Page, body func(io.Writer)) {
	title := "Discovery Space"
	if page.Title != "" {
		title = page.Title + " | Discovery Space"
	}
	write(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>`, esc(title), `</title>
    <link rel="stylesheet" href="`, assetPath("/static/styles.css"), `"/>
  </head>
  <body>
    <nav class="nav">
      <a href="/home" class="brand">Discovery Space</a>
      <a href="/games">Games</a>
      <a href="/members">Members</a>
`)
	if page.LoggedIn {
		write(w, `      <a href="/manage_members">Manage members</a>
      <a href="/members/metrics">Metrics</a>
      <a href="/staff/scans">Scans</a>
      <a href="/logout">Log out</a>
`)
	} else {
		write(w, `      <a href="/login">Staff login</a>
`)
	}
	write(w, `    </nav>
    <main class="shell">
`)
	flashes(w, page.Flashes)
	body(w)
	write(w, `    </main>
    <script>
      (() => {
        const proto = location.protocol === "https:" ? "wss://" : "ws://";
        const ws = new WebSocket(proto + location.host + "/ws/kiosk");
        ws.onmessage = (event) => {
          const data = JSON.parse(event.data);
          document.dispatchEvent(new CustomEvent("kiosk:" + data.type, { detail: data }));
        };
      })();
    </script>
  </body>
</html>
`)
}

func flashes(w io.Writer, items []Flash) {
	if len(items) == 0 {
		return
	}
	write(w, `      <ul class="flashes">
`)
	for _, flash := range items {
		write(w, `        <li class="flash flash-`, esc(flash.Category), `">`, esc(flash.Message), `</li>
`)
	}
	write(w, `      </ul>
`)
}
