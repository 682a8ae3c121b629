package web

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

func Members(page Page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		layout(w, page, func(w io.Writer) {
			write(w, `      <section class="panel">
        <h2>Member check-in</h2>
        <form method="post" action="/members" class="stack">
          <input name="member_tag" placeholder="Scan your membership card" autocomplete="off" autofocus/>
          <button type="submit" class="primary">Check in</button>
        </form>
      </section>

      <section class="panel">
        <h2>Add member</h2>
        <form method="post" action="/members" class="stack">
          <input name="first_name" placeholder="First name"/>
          <input name="last_name" placeholder="Last name"/>
          <input name="card_number" placeholder="Scan membership card" autocomplete="off"/>
          <button type="submit" name="new_member" value="1" class="secondary">Add member</button>
        </form>
      </section>
`)
		})
		return nil
	})
}

func MemberInfo(data MemberInfoData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		layout(w, data.Page, func(w io.Writer) {
			member := data.Member
			action := "/members/" + utoa(member.ID)
			write(w, `      <section class="panel">
        <h2>`, esc(member.FirstName), ` `, esc(member.LastName), `</h2>
        <dl>
          <dt>Card</dt><dd>`, esc(member.CardNumber), `</dd>
          <dt>Visits</dt><dd>`, strconv.FormatInt(member.Visits, 10), `</dd>
          <dt>Last visit</dt><dd>`, formatTime(member.LastVisit), `</dd>
        </dl>
        <form method="post" action="`, action, `" class="stack">
          <input name="first_name" value="`, esc(member.FirstName), `"/>
          <input name="last_name" value="`, esc(member.LastName), `"/>
          <input name="new_tag" value="`, esc(member.CardNumber), `" autocomplete="off"/>
          <button type="submit" name="update_member" value="1" class="primary">Update</button>
        </form>
        <form method="post" action="`, action, `">
          <button type="submit" name="the_member" value="1" class="danger">Delete member</button>
        </form>
      </section>
`)
		})
		return nil
	})
}

func ManageMembers(page Page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		layout(w, page, func(w io.Writer) {
			searchForm(w, "")
		})
		return nil
	})
}

func SearchResults(data SearchResultsData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		layout(w, data.Page, func(w io.Writer) {
			searchForm(w, data.Query)
			write(w, `      <section class="panel">
        <table>
          <thead><tr><th>Last name</th><th>First name</th><th>Card</th><th>Visits</th><th>Last visit</th></tr></thead>
          <tbody>
`)
			for _, member := range data.Members {
				write(w, `            <tr>
              <td><a href="/members/`, utoa(member.ID), `">`, esc(member.LastName), `</a></td>
              <td>`, esc(member.FirstName), `</td>
              <td>`, esc(member.CardNumber), `</td>
              <td>`, strconv.FormatInt(member.Visits, 10), `</td>
              <td>`, formatTime(member.LastVisit), `</td>
            </tr>
`)
			}
			write(w, `          </tbody>
        </table>
      </section>
`)
		})
		return nil
	})
}

func searchForm(w io.Writer, query string) {
	write(w, `      <section class="panel">
        <h2>Find members</h2>
        <form method="post" action="/manage_members" class="stack">
          <input name="search_query" value="`, esc(query), `" placeholder="Last name"/>
          <button type="submit" class="primary">Search</button>
        </form>
      </section>
`)
}

func Metrics(data MetricsData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		layout(w, data.Page, func(w io.Writer) {
			write(w, `      <section class="panel">
        <h2>Attendance</h2>
        <dl class="metrics">
          <dt>From</dt><dd>`, formatDate(data.Start), `</dd>
          <dt>To</dt><dd>`, formatDate(data.End), `</dd>
          <dt>Total visits</dt><dd id="totalVisits">`, itoa(data.TotalVisits), `</dd>
          <dt>Visits per day</dt><dd id="visitsPerDay">`, strconv.FormatFloat(data.VisitsPerDay, 'f', 2, 64), `</dd>
          <dt>Busiest day</dt><dd id="maxDate">`, formatDate(data.MaxDate), ` (`, itoa(data.MaxVisits), ` visits)</dd>
        </dl>
        <form method="post" action="/members/metrics" class="stack">
          <input name="start_date" placeholder="MM/DD/YYYY"/>
          <input name="end_date" placeholder="MM/DD/YYYY"/>
          <button type="submit" name="run" value="1" class="primary">Run report</button>
        </form>
      </section>
`)
		})
		return nil
	})
}
