package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func ManageGame(data ManageGameData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		layout(w, data.Page, func(w io.Writer) {
			action := "/games/manage/" + utoa(data.Game.ID)
			write(w, `      <section class="panel">
        <h2>Edit game</h2>
        <form method="post" action="`, action, `" class="stack">
          <input name="game_title" value="`, esc(data.Game.Title), `" placeholder="Title"/>
          <textarea name="game_description" placeholder="Description">`, esc(data.Game.Description), `</textarea>
          <select name="mode">
`)
			for _, mode := range data.Modes {
				selected := ""
				if mode.ID == data.Game.GameModeID {
					selected = ` selected`
				}
				write(w, `            <option value="`, utoa(mode.ID), `"`, selected, `>`, esc(string(mode.Mode)), `</option>
`)
			}
			write(w, `          </select>
          <button type="submit" name="edit_game" value="1" class="primary">Save</button>
        </form>
      </section>

      <section class="panel">
        <h2>RFID devices</h2>
        <table>
          <thead><tr><th>Name</th><th>Description</th><th>Tag</th><th>File</th><th></th></tr></thead>
          <tbody>
`)
			for _, device := range data.Devices {
				write(w, `            <tr>
              <td>`, esc(device.Name), `</td>
              <td>`, esc(device.Description), `</td>
              <td>`, esc(device.RFIDTag), `</td>
              <td>`, esc(device.FileLoc), `</td>
              <td>
                <form method="post" action="`, action, `" class="inline">
                  <input type="hidden" name="device_id" value="`, utoa(device.ID), `"/>
                  <button type="submit" name="the_device" value="1" class="danger">Delete</button>
                </form>
              </td>
            </tr>
`)
			}
			write(w, `          </tbody>
        </table>
        <form method="post" action="`, action, `" enctype="multipart/form-data" class="stack">
          <input name="device_name" placeholder="Name"/>
          <input name="device_description" placeholder="Description"/>
          <input name="device_tag" placeholder="Scan tag" autocomplete="off"/>
          <input name="file" type="file"/>
          <button type="submit" name="add_rfid" value="1" class="primary">Add device</button>
        </form>
      </section>
`)
			if !data.Game.IsChallenge() {
				return
			}
			write(w, `
      <section class="panel">
        <h2>Questions</h2>
        <ul class="questions">
`)
			for _, question := range data.Questions {
				write(w, `          <li>
            <strong>`, esc(question.Question), `</strong>
            <span class="answers">`)
				for i, answer := range question.Answers {
					if i > 0 {
						write(w, `, `)
					}
					write(w, esc(answer.Name))
				}
				write(w, `</span>
            <form method="post" action="`, action, `" class="inline">
              <input type="hidden" name="question_id" value="`, utoa(question.ID), `"/>
              <button type="submit" name="the_question" value="1" class="danger">Delete</button>
            </form>
          </li>
`)
			}
			write(w, `        </ul>
        <form method="post" action="`, action, `" class="stack">
          <input name="question_text" placeholder="Question"/>
          <fieldset>
            <legend>Answers</legend>
`)
			for _, device := range data.Devices {
				write(w, `            <label><input type="checkbox" name="answers" value="`, utoa(device.ID), `"/> `, esc(device.Name), `</label>
`)
			}
			write(w, `          </fieldset>
          <button type="submit" name="add_question" value="1" class="primary">Add question</button>
        </form>
      </section>
`)
		})
		return nil
	})
}
