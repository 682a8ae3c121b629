package web

import (
	"context"
	"io"

	"discovery-space/internal/db"

	"github.com/a-h/templ"
)

func Games(data GamesData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		layout(w, data.Page, func(w io.Writer) {
			gameSection(w, "Learning games", "/games/learn/", data.Learning, data.LoggedIn)
			gameSection(w, "Challenge games", "/games/challenge/", data.Challenge, data.LoggedIn)
			if data.LoggedIn {
				write(w, `      <form method="post" action="/games" class="panel">
        <button type="submit" name="create" value="1" class="primary">Create game</button>
      </form>
`)
			}
			write(w, `      <script>
        document.addEventListener("kiosk:games_changed", () => location.reload());
      </script>
`)
		})
		return nil
	})
}

func gameSection(w io.Writer, heading, playPrefix string, games []db.Game, staff bool) {
	write(w, `      <section class="panel">
        <h2>`, esc(heading), `</h2>
`)
	if len(games) == 0 {
		write(w, `        <p class="muted">No games yet.</p>
      </section>
`)
		return
	}
	write(w, `        <ul class="games">
`)
	for _, game := range games {
		id := utoa(game.ID)
		write(w, `          <li>
            <a href="`, playPrefix, id, `"><strong>`, esc(game.Title), `</strong></a>
            <span>`, esc(game.Description), `</span>
`)
		if staff {
			write(w, `            <a href="/games/manage/`, id, `">Edit</a>
            <form method="post" action="/games" class="inline">
              <input type="hidden" name="game_id" value="`, id, `"/>
              <button type="submit" name="the_game" value="1" class="danger">Delete</button>
            </form>
`)
		}
		write(w, `          </li>
`)
	}
	write(w, `        </ul>
      </section>
`)
}

func LearningGame(data LearningGameData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		layout(w, data.Page, func(w io.Writer) {
			write(w, `      <header class="hero">
        <span class="tag">Learning</span>
        <h1>`, esc(data.Game.Title), `</h1>
        <p>`, esc(data.Game.Description), `</p>
      </header>
      <section class="panel">
        <form id="scanForm" class="scan-form" data-game="`, utoa(data.Game.ID), `">
          <input name="tag" placeholder="Scan an object" autocomplete="off" autofocus/>
        </form>
        <div id="scanResult" class="result"></div>
      </section>
`)
			scanScript(w, "/_validate_learning_tag", "")
		})
		return nil
	})
}

func ChallengeGame(data ChallengeGameData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		layout(w, data.Page, func(w io.Writer) {
			gameID := utoa(data.Game.ID)
			write(w, `      <header class="hero">
        <span class="tag">Challenge</span>
        <h1>`, esc(data.Game.Title), `</h1>
        <p>`, esc(data.Game.Description), `</p>
      </header>
      <section class="panel">
`)
			if data.Question == nil {
				write(w, `        <p class="muted">This game has no questions yet.</p>
`)
			} else {
				write(w, `        <h2 class="question">`, esc(data.Question.Question), `</h2>
        <form id="scanForm" class="scan-form" data-game="`, gameID, `">
          <input name="tag" placeholder="Scan your answer" autocomplete="off" autofocus/>
        </form>
        <div id="scanResult" class="result"></div>
`)
			}
			write(w, `        <form method="post" action="/games/challenge/`, gameID, `" class="nav-buttons">
`)
			if data.Question != nil && data.Question.ID != data.MinID {
				write(w, `          <button type="submit" name="previous_question" value="1" class="secondary">Previous</button>
`)
			}
			if data.Question != nil && data.Question.ID != data.MaxID {
				write(w, `          <button type="submit" name="next_question" value="1" class="primary">Next</button>
`)
			}
			write(w, `          <button type="submit" name="finish" value="1">Finish</button>
        </form>
      </section>
`)
			if data.Question != nil {
				scanScript(w, "/_validate_challenge_tag", utoa(data.Question.ID))
			}
		})
		return nil
	})
}

func scanScript(w io.Writer, endpoint, questionID string) {
	write(w, `      <script>
        (() => {
          const form = document.getElementById("scanForm");
          const result = document.getElementById("scanResult");
          const questionID = "`, questionID, `";
          form.addEventListener("submit", async (event) => {
            event.preventDefault();
            const params = new URLSearchParams({ tag: form.elements.tag.value.trim(), game_id: form.dataset.game });
            if (questionID) {
              params.set("question_id", questionID);
            }
            form.reset();
            const res = await fetch("`, endpoint, `?" + params.toString());
            const data = await res.json();
            result.replaceChildren();
            if (data.valid !== "true") {
              result.textContent = "Not quite. Try another object!";
              result.className = "result miss";
              return;
            }
            result.className = "result hit";
            const title = document.createElement("h3");
            title.textContent = data.device__name;
            const text = document.createElement("p");
            text.textContent = data.device__description;
            result.append(title, text);
            const tags = { image: "img", audio: "audio", video: "video" };
            if (tags[data.media]) {
              const media = document.createElement(tags[data.media]);
              media.src = data.file_loc;
              if (data.media !== "image") {
                media.controls = true;
                media.autoplay = true;
              }
              result.append(media);
            }
          });
        })();
      </script>
`)
}
