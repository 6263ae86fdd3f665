package templates

import "fmt"

// StandupEntry is one participant's update in a standup summary.
type StandupEntry struct {
	Author    string
	Yesterday string
	Today     string
	Blockers  string
}

// StandupSummary is the payload for a daily standup digest.
type StandupSummary struct {
	TeamName  string
	Date      string
	Entries   []StandupEntry
	BoardLink string
}

func (StandupSummary) TemplateType() Type { return TypeStandupSummary }

func (d StandupSummary) validate() error {
	if d.Date == "" {
		return missingField(TypeStandupSummary, "date")
	}
	return nil
}

func (d StandupSummary) subject(b Branding) string {
	team := d.TeamName
	if team == "" {
		team = "Team"
	}
	return fmt.Sprintf("%s standup summary for %s", team, d.Date)
}

func (d StandupSummary) markdown(b Branding) string {
	table := ""
	if len(d.Entries) > 0 {
		rows := make([][]string, len(d.Entries))
		for i, e := range d.Entries {
			rows[i] = []string{e.Author, e.Yesterday, e.Today, e.Blockers}
		}
		table = mdTable([]string{"Who", "Yesterday", "Today", "Blockers"}, rows)
	} else {
		table = "No updates were recorded for this standup."
	}
	cta := ""
	if d.BoardLink != "" {
		cta = mdButton("Open Board", d.BoardLink)
	}
	return blocks(
		mdHeading(fmt.Sprintf("Standup summary for %s", d.Date)),
		table,
		cta,
	)
}

func (d StandupSummary) plaintext(b Branding) string {
	lines := []string{fmt.Sprintf("Standup summary for %s", d.Date)}
	if len(d.Entries) == 0 {
		lines = append(lines, "No updates were recorded for this standup.")
	}
	for _, e := range d.Entries {
		lines = append(lines, fmt.Sprintf("%s:", e.Author))
		if e.Yesterday != "" {
			lines = append(lines, "  Yesterday: "+e.Yesterday)
		}
		if e.Today != "" {
			lines = append(lines, "  Today: "+e.Today)
		}
		if e.Blockers != "" {
			lines = append(lines, "  Blockers: "+e.Blockers)
		}
	}
	lines = append(lines, textLink("Board", d.BoardLink))
	return textLines(lines...)
}

// ProjectSummary is the payload for a periodic project progress report.
type ProjectSummary struct {
	ProjectName    string
	Period         string
	TasksCompleted int
	TasksTotal     int
	Highlights     []string
	ReportLink     string
}

func (ProjectSummary) TemplateType() Type { return TypeProjectSummary }

func (d ProjectSummary) validate() error {
	if d.ProjectName == "" {
		return missingField(TypeProjectSummary, "projectName")
	}
	return nil
}

func (d ProjectSummary) subject(b Branding) string {
	if d.Period != "" {
		return fmt.Sprintf("%s: progress report for %s", d.ProjectName, d.Period)
	}
	return fmt.Sprintf("%s: progress report", d.ProjectName)
}

func (d ProjectSummary) markdown(b Branding) string {
	progress := ""
	if d.TasksTotal > 0 {
		progress = fmt.Sprintf("**%d of %d** tasks completed.", d.TasksCompleted, d.TasksTotal)
	}
	highlights := ""
	if len(d.Highlights) > 0 {
		highlights = blocks("Highlights:", mdList(d.Highlights))
	}
	cta := ""
	if d.ReportLink != "" {
		cta = mdButton("View Full Report", d.ReportLink)
	}
	return blocks(
		mdHeading(fmt.Sprintf("%s progress report", d.ProjectName)),
		progress,
		highlights,
		cta,
	)
}

func (d ProjectSummary) plaintext(b Branding) string {
	lines := []string{fmt.Sprintf("%s progress report", d.ProjectName)}
	if d.Period != "" {
		lines = append(lines, "Period: "+d.Period)
	}
	if d.TasksTotal > 0 {
		lines = append(lines, fmt.Sprintf("%d of %d tasks completed.", d.TasksCompleted, d.TasksTotal))
	}
	for _, h := range d.Highlights {
		lines = append(lines, "- "+h)
	}
	lines = append(lines, textLink("Full report", d.ReportLink))
	return textLines(lines...)
}

// MilestoneComplete is the payload announcing a completed project milestone.
type MilestoneComplete struct {
	ProjectName   string
	Milestone     string
	CompletedOn   string
	NextMilestone string
	ProjectLink   string
}

func (MilestoneComplete) TemplateType() Type { return TypeMilestoneComplete }

func (d MilestoneComplete) validate() error {
	switch {
	case d.ProjectName == "":
		return missingField(TypeMilestoneComplete, "projectName")
	case d.Milestone == "":
		return missingField(TypeMilestoneComplete, "milestone")
	}
	return nil
}

func (d MilestoneComplete) subject(b Branding) string {
	return fmt.Sprintf("Milestone complete: %s (%s)", d.ProjectName, d.Milestone)
}

func (d MilestoneComplete) markdown(b Branding) string {
	when := ""
	if d.CompletedOn != "" {
		when = fmt.Sprintf("Completed on %s.", d.CompletedOn)
	}
	next := ""
	if d.NextMilestone != "" {
		next = fmt.Sprintf("Up next: **%s**", d.NextMilestone)
	}
	cta := ""
	if d.ProjectLink != "" {
		cta = mdButton("View Project", d.ProjectLink)
	}
	return blocks(
		mdHeading(fmt.Sprintf("%s %s", d.Milestone, mdBadge("complete"))),
		fmt.Sprintf("The **%s** milestone on %s has been completed.", d.Milestone, d.ProjectName),
		when,
		next,
		cta,
	)
}

func (d MilestoneComplete) plaintext(b Branding) string {
	when := ""
	if d.CompletedOn != "" {
		when = fmt.Sprintf("Completed on %s.", d.CompletedOn)
	}
	next := ""
	if d.NextMilestone != "" {
		next = "Up next: " + d.NextMilestone
	}
	return textLines(
		fmt.Sprintf("The %s milestone on %s has been completed.", d.Milestone, d.ProjectName),
		when,
		next,
		textLink("Project", d.ProjectLink),
	)
}

// TaskAssigned is the payload notifying a user of a new task assignment.
type TaskAssigned struct {
	TaskTitle    string
	ProjectName  string
	AssignedBy   string
	DueDate      string
	TaskPriority string
	TaskLink     string
}

func (TaskAssigned) TemplateType() Type { return TypeTaskAssigned }

func (d TaskAssigned) validate() error {
	switch {
	case d.TaskTitle == "":
		return missingField(TypeTaskAssigned, "taskTitle")
	case d.TaskLink == "":
		return missingField(TypeTaskAssigned, "taskLink")
	}
	return nil
}

func (d TaskAssigned) subject(b Branding) string {
	return fmt.Sprintf("New task assigned: %s", d.TaskTitle)
}

func (d TaskAssigned) markdown(b Branding) string {
	badge := ""
	if d.TaskPriority != "" {
		badge = mdBadge(d.TaskPriority)
	}
	details := []string{}
	if d.ProjectName != "" {
		details = append(details, "Project: "+d.ProjectName)
	}
	if d.AssignedBy != "" {
		details = append(details, "Assigned by: "+d.AssignedBy)
	}
	if d.DueDate != "" {
		details = append(details, "Due: "+d.DueDate)
	}
	detailList := ""
	if len(details) > 0 {
		detailList = mdList(details)
	}
	return blocks(
		mdHeading(fmt.Sprintf("%s %s", d.TaskTitle, badge)),
		"A task has been assigned to you.",
		detailList,
		mdButton("Open Task", d.TaskLink),
	)
}

func (d TaskAssigned) plaintext(b Branding) string {
	lines := []string{
		fmt.Sprintf("New task assigned: %s", d.TaskTitle),
	}
	if d.ProjectName != "" {
		lines = append(lines, "Project: "+d.ProjectName)
	}
	if d.AssignedBy != "" {
		lines = append(lines, "Assigned by: "+d.AssignedBy)
	}
	if d.DueDate != "" {
		lines = append(lines, "Due: "+d.DueDate)
	}
	if d.TaskPriority != "" {
		lines = append(lines, "Priority: "+d.TaskPriority)
	}
	lines = append(lines, textLink("Open task", d.TaskLink))
	return textLines(lines...)
}

// HandoverReady is the payload announcing a completed handover pack.
type HandoverReady struct {
	ProjectName string
	ClientName  string
	Contents    []string
	PackLink    string
}

func (HandoverReady) TemplateType() Type { return TypeHandoverReady }

func (d HandoverReady) validate() error {
	switch {
	case d.ProjectName == "":
		return missingField(TypeHandoverReady, "projectName")
	case d.PackLink == "":
		return missingField(TypeHandoverReady, "packLink")
	}
	return nil
}

func (d HandoverReady) subject(b Branding) string {
	return fmt.Sprintf("Your handover pack for %s is ready", d.ProjectName)
}

func (d HandoverReady) markdown(b Branding) string {
	contents := ""
	if len(d.Contents) > 0 {
		contents = blocks("The pack includes:", mdList(d.Contents))
	}
	return blocks(
		mdHeading(fmt.Sprintf("%s handover pack", d.ProjectName)),
		greeting(d.ClientName),
		fmt.Sprintf("The handover pack for **%s** is ready for download.", d.ProjectName),
		contents,
		mdButton("Download Pack", d.PackLink),
	)
}

func (d HandoverReady) plaintext(b Branding) string {
	lines := []string{
		greeting(d.ClientName),
		fmt.Sprintf("The handover pack for %s is ready for download.", d.ProjectName),
	}
	for _, c := range d.Contents {
		lines = append(lines, "- "+c)
	}
	lines = append(lines, textLink("Download pack", d.PackLink))
	return textLines(lines...)
}
