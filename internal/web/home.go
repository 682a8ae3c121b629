package web

import (
	"context"
	"io"
	"net/url"

	"github.com/a-h/templ"
)

func Home(page Page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		layout(w, page, func(w io.Writer) {
			write(w, `      <header class="hero">
        <span class="tag">Discovery Space</span>
        <h1>Scan. Learn. Discover.</h1>
        <p>Pick a game and scan the objects around the exhibit, or check in with your membership card.</p>
      </header>

      <section class="panel">
        <a class="primary" href="/games">Play a game</a>
        <a class="secondary" href="/members">Member check-in</a>
      </section>
`)
		})
		return nil
	})
}

func Login(data LoginData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		layout(w, data.Page, func(w io.Writer) {
			action := "/login"
			if data.Next != "" {
				action += "?next=" + url.QueryEscape(data.Next)
			}
			write(w, `      <section class="panel">
        <h2>Staff login</h2>
        <form method="post" action="`, esc(action), `" class="stack">
          <input name="username" placeholder="Username" value="`, esc(data.Username), `" autocomplete="username" required/>
          <input name="password" type="password" placeholder="Password" autocomplete="current-password" required/>
          <button type="submit" class="primary">Log in</button>
        </form>
      </section>
`)
		})
		return nil
	})
}
