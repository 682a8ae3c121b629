package server

import (
	"fmt"
	"net/http"
	"time"

	"discovery-space/internal/services"
	"discovery-space/internal/web"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
)

func memberRow(summary services.MemberSummary) web.MemberRow {
	return web.MemberRow{
		ID:         summary.Member.ID,
		FirstName:  summary.Member.FirstName,
		LastName:   summary.Member.LastName,
		CardNumber: summary.Member.CardNumber,
		Visits:     summary.Visits,
		LastVisit:  summary.LastVisit,
	}
}

func (s *Server) handleMembersView(c *gin.Context) {
	templ.Handler(web.Members(s.page(c, "Members"))).ServeHTTP(c.Writer, c.Request)
}

func (s *Server) handleMembersAction(c *gin.Context) {
	ctx := c.Request.Context()
	switch {
	case hasField(c, "member_tag"):
		member, ok, err := s.members.CheckIn(ctx, c.PostForm("member_tag"))
		if err != nil {
			s.serverError(c, "member_check_in", err)
			return
		}
		if !ok {
			s.sessions.AddFlash(c, web.FlashError, `Card does not correspond to active member. Select "Add Member" to add a new member.`)
			c.Redirect(http.StatusFound, "/members")
			return
		}
		s.broadcastVisit(member.FirstName)
		s.sessions.AddFlash(c, web.FlashSuccess, "Thank you for visiting!")
		c.Redirect(http.StatusFound, "/home")
		return
	case hasField(c, "new_member"):
		member, err := s.members.Enroll(ctx, c.PostForm("first_name"), c.PostForm("last_name"), c.PostForm("card_number"))
		if err != nil && !s.flashValidation(c, err) {
			s.serverError(c, "member_enroll", err)
			return
		}
		if err == nil {
			s.broadcastVisit(member.FirstName)
			s.sessions.AddFlash(c, web.FlashSuccess,
				fmt.Sprintf("Successfully added %s %s as a member! Welcome!", member.FirstName, member.LastName))
		}
	}
	c.Redirect(http.StatusFound, "/members")
}

func (s *Server) handleMemberInfo(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	summary, err := s.members.MemberInfo(c.Request.Context(), id)
	if err != nil {
		if isNotFound(err) {
			c.Status(http.StatusNotFound)
			return
		}
		s.serverError(c, "member_info", err)
		return
	}
	data := web.MemberInfoData{
		Page:   s.page(c, summary.Member.FirstName+" "+summary.Member.LastName),
		Member: memberRow(summary),
	}
	templ.Handler(web.MemberInfo(data)).ServeHTTP(c.Writer, c.Request)
}

func (s *Server) handleMemberAction(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if _, err := s.members.GetMember(ctx, id); err != nil {
		if isNotFound(err) {
			c.Status(http.StatusNotFound)
			return
		}
		s.serverError(c, "member_action", err)
		return
	}
	switch {
	case hasField(c, "the_member"):
		member, err := s.members.DeleteMember(ctx, id)
		if err != nil {
			s.serverError(c, "member_delete", err)
			return
		}
		s.sessions.AddFlash(c, web.FlashSuccess, fmt.Sprintf("Successfully deleted %s %s.", member.FirstName, member.LastName))
		c.Redirect(http.StatusFound, "/members")
		return
	case hasField(c, "update_member"):
		_, err := s.members.UpdateMember(ctx, id, c.PostForm("first_name"), c.PostForm("last_name"), c.PostForm("new_tag"))
		if err != nil && !s.flashValidation(c, err) {
			s.serverError(c, "member_update", err)
			return
		}
		if err == nil {
			s.sessions.AddFlash(c, web.FlashSuccess, "Successfully updated member information.")
		}
	}
	c.Redirect(http.StatusFound, memberPath(id))
}

func (s *Server) handleManageMembers(c *gin.Context) {
	templ.Handler(web.ManageMembers(s.page(c, "Manage members"))).ServeHTTP(c.Writer, c.Request)
}

func (s *Server) handleMemberSearch(c *gin.Context) {
	query := c.PostForm("search_query")
	results, err := s.members.Search(c.Request.Context(), query)
	if err != nil {
		if !s.flashValidation(c, err) {
			s.serverError(c, "member_search", err)
			return
		}
		c.Redirect(http.StatusFound, "/manage_members")
		return
	}
	if len(results) == 0 {
		s.sessions.AddFlash(c, web.FlashError, "Your search query did not match any members. Try again.")
		c.Redirect(http.StatusFound, "/manage_members")
		return
	}
	data := web.SearchResultsData{
		Page:    s.page(c, "Search results"),
		Query:   query,
		Members: make([]web.MemberRow, 0, len(results)),
	}
	for _, result := range results {
		data.Members = append(data.Members, memberRow(result))
	}
	templ.Handler(web.SearchResults(data)).ServeHTTP(c.Writer, c.Request)
}

func (s *Server) handleMetrics(c *gin.Context) {
	s.renderReport(c, s.cfg.DeployTime(), time.Now())
}

func (s *Server) handleMetricsRun(c *gin.Context) {
	if !hasField(c, "run") {
		c.Redirect(http.StatusFound, "/members/metrics")
		return
	}
	var form metricsForm
	if msg := bindForm(c, &form, metricsMessages, "Invalid date format. Use MM/DD/YYYY."); msg != "" {
		s.sessions.AddFlash(c, web.FlashError, msg)
		c.Redirect(http.StatusFound, "/members/metrics")
		return
	}
	start, end, err := services.ReportRange(form.StartDate, form.EndDate, s.cfg.DeployTime(), time.Now())
	if err != nil {
		if !s.flashValidation(c, err) {
			s.serverError(c, "metrics", err)
			return
		}
		c.Redirect(http.StatusFound, "/members/metrics")
		return
	}
	s.renderReport(c, start, end)
}

func (s *Server) renderReport(c *gin.Context, start, end time.Time) {
	report, err := s.members.AttendanceReport(c.Request.Context(), start, end)
	if err != nil {
		s.serverError(c, "metrics", err)
		return
	}
	data := web.MetricsData{
		Page:         s.page(c, "Member metrics"),
		Start:        report.Start,
		End:          report.End,
		TotalVisits:  report.TotalVisits,
		VisitsPerDay: report.VisitsPerDay,
		MaxDate:      report.MaxDate,
		MaxVisits:    report.MaxVisits,
	}
	templ.Handler(web.Metrics(data)).ServeHTTP(c.Writer, c.Request)
}
