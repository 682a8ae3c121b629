package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func Scans(data ScansData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		layout(w, data.Page, func(w io.Writer) {
			write(w, `      <section class="panel">
        <h2>Recent scans</h2>
        <table>
          <thead><tr><th>Time</th><th>Kind</th><th>Tag</th><th>Game</th><th>Question</th><th>Result</th></tr></thead>
          <tbody>
`)
			for _, scan := range data.Scans {
				question := "-"
				if scan.QuestionID != 0 {
					question = utoa(scan.QuestionID)
				}
				result := "miss"
				if scan.Valid {
					result = "match: " + scan.Name
				}
				write(w, `            <tr>
              <td>`, formatTime(scan.CreatedAt), `</td>
              <td>`, esc(scan.Kind), `</td>
              <td>`, esc(scan.Tag), `</td>
              <td>`, utoa(scan.GameID), `</td>
              <td>`, question, `</td>
              <td>`, esc(result), `</td>
            </tr>
`)
			}
			write(w, `          </tbody>
        </table>
`)
			pagination(w, data.Pagination)
			write(w, `      </section>
`)
		})
		return nil
	})
}

func pagination(w io.Writer, data PaginationData) {
	if data.TotalPages <= 1 {
		return
	}
	write(w, `        <nav class="pagination">
`)
	if data.HasPrev {
		write(w, `          <a href="`, esc(pageURL(data.BasePath, data.PrevPage, data.PerPage)), `">Previous</a>
`)
	}
	write(w, `          <span>Page `, itoa(data.Page), ` of `, itoa(data.TotalPages), `</span>
`)
	if data.HasNext {
		write(w, `          <a href="`, esc(pageURL(data.BasePath, data.NextPage, data.PerPage)), `">Next</a>
`)
	}
	write(w, `        </nav>
`)
}
