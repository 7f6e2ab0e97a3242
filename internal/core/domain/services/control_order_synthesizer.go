package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"manufacturing/internal/core/domain/model/controlorder"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/schedule"
)

// Role is the kind of work a workstation performs.
type Role string

const (
	RoleProduction Role = "PRODUCTION"
	RoleAssembly   Role = "ASSEMBLY"
	RoleUnknown    Role = "UNKNOWN"
)

// SynthesisPriority is the priority given to every synthesized control order.
const SynthesisPriority = kernel.PriorityMedium

const taskTimeLayout = "2006-01-02T15:04:05"

const assemblyQualityStandards = "Assembly Quality Standards:\n" +
	"- All components must be properly aligned\n" +
	"- Torque specifications must be followed\n" +
	"- Final assembly must pass visual inspection\n" +
	"- Test functionality before completion\n" +
	"- Document any defects or rework required"

var (
	productionWorkstation = regexp.MustCompile(`^WS-[12]$`)
	assemblyWorkstation   = regexp.MustCompile(`^WS-[34]$`)
)

// ClassifyWorkstation maps a scheduler workstation identifier to its role.
func ClassifyWorkstation(workstationID string) Role {
	switch {
	case productionWorkstation.MatchString(workstationID):
		return RoleProduction
	case assemblyWorkstation.MatchString(workstationID):
		return RoleAssembly
	default:
		return RoleUnknown
	}
}

// TaskGroup is the ordered list of tasks scheduled at one workstation.
type TaskGroup struct {
	WorkstationID string
	Role          Role
	Tasks         []schedule.Task
}

// SynthesisPlan is the outcome of planning: one draft per production or
// assembly workstation, plus the groups that could not be classified.
type SynthesisPlan struct {
	Drafts  []controlorder.Draft
	Skipped []TaskGroup
}

// ControlOrderSynthesizer turns a schedule into control order drafts.
//
// Tasks are grouped by workstation in first-seen order, keeping the order of
// tasks inside each group. Each production group yields one production draft
// and each assembly group one assembly draft; other groups are skipped.
type ControlOrderSynthesizer struct{}

// NewControlOrderSynthesizer returns a stateless synthesizer.
func NewControlOrderSynthesizer() ControlOrderSynthesizer {
	return ControlOrderSynthesizer{}
}

// GroupByWorkstation groups tasks by workstation id preserving first-seen order.
func (s ControlOrderSynthesizer) GroupByWorkstation(tasks []schedule.Task) []TaskGroup {
	index := make(map[string]int)
	groups := make([]TaskGroup, 0)
	for _, task := range tasks {
		i, ok := index[task.WorkstationID]
		if !ok {
			i = len(groups)
			index[task.WorkstationID] = i
			groups = append(groups, TaskGroup{
				WorkstationID: task.WorkstationID,
				Role:          ClassifyWorkstation(task.WorkstationID),
			})
		}
		groups[i].Tasks = append(groups[i].Tasks, task)
	}
	return groups
}

// Plan builds the drafts for productionOrderID from sched.
func (s ControlOrderSynthesizer) Plan(productionOrderID kernel.UUID, sched schedule.Schedule) SynthesisPlan {
	var plan SynthesisPlan
	for _, group := range s.GroupByWorkstation(sched.Tasks) {
		if group.Role == RoleUnknown {
			plan.Skipped = append(plan.Skipped, group)
			continue
		}

		draft := controlorder.Draft{
			Type:              controlorder.Production,
			ProductionOrderID: productionOrderID,
			WorkstationID:     group.Tasks[0].Workstation(),
			ScheduleID:        sched.ID,
			Priority:          SynthesisPriority,
			TargetStart:       group.Tasks[0].Start,
			TargetCompletion:  group.Tasks[len(group.Tasks)-1].End,
		}
		if group.Role == RoleAssembly {
			draft.Type = controlorder.Assembly
			draft.Details = controlorder.Details{
				Instructions:       AssemblyInstructions(group.Tasks),
				QualityCheckpoints: assemblyQualityStandards,
			}
		} else {
			draft.Details = controlorder.Details{
				Instructions:             ProductionInstructions(group.Tasks),
				QualityCheckpoints:       QualityCheckpoints(group.Tasks),
				EstimatedDurationMinutes: totalDuration(group.Tasks),
			}
		}
		plan.Drafts = append(plan.Drafts, draft)
	}
	return plan
}

// ProductionInstructions renders the numbered step list attached to a
// production control order.
//
// Parameters:
//   - tasks: the tasks of one production workstation, in schedule order
//
// Returns:
//   - a "Production Schedule:" header followed by one block per task with
//     item, quantity, duration and the start/end times
//
// Example:
//
//	text := ProductionInstructions(group.Tasks)
//	// Production Schedule:
//	//
//	// Step 1:
//	//   Item: Frame
//	//   Quantity: 2
//	//   ...
func ProductionInstructions(tasks []schedule.Task) string {
	var b strings.Builder
	b.WriteString("Production Schedule:\n")
	for i, task := range tasks {
		fmt.Fprintf(&b, "\nStep %d:\n", i+1)
		fmt.Fprintf(&b, "  Item: %s\n", task.ItemName)
		fmt.Fprintf(&b, "  Quantity: %d\n", task.Quantity)
		fmt.Fprintf(&b, "  Duration: %d minutes\n", task.DurationMinutes)
		fmt.Fprintf(&b, "  Time: %s to %s\n", formatTaskTime(task.Start), formatTaskTime(task.End))
	}
	return b.String()
}

// QualityCheckpoints renders one checklist per task, matching the step numbers of ProductionInstructions.
func QualityCheckpoints(tasks []schedule.Task) string {
	var b strings.Builder
	b.WriteString("Quality Checkpoints:\n")
	for i, task := range tasks {
		fmt.Fprintf(&b, "\nAfter Step %d:\n", i+1)
		fmt.Fprintf(&b, "  - Verify %s dimensions\n", task.ItemName)
		b.WriteString("  - Check quality standards\n")
		b.WriteString("  - Document completion time\n")
	}
	return b.String()
}

// AssemblyInstructions renders the component list for an assembly control order.
// Unlike ProductionInstructions it carries no times, only the estimated minutes.
func AssemblyInstructions(tasks []schedule.Task) string {
	var b strings.Builder
	b.WriteString("Assembly Instructions:\n")
	for i, task := range tasks {
		fmt.Fprintf(&b, "\nStep %d:\n", i+1)
		fmt.Fprintf(&b, "  Component: %s\n", task.ItemName)
		fmt.Fprintf(&b, "  Quantity: %d\n", task.Quantity)
		fmt.Fprintf(&b, "  Estimated Time: %d minutes\n", task.DurationMinutes)
	}
	return b.String()
}

// AssemblyQualityStandards is the fixed checklist attached to assembly drafts.
func AssemblyQualityStandards() string {
	return assemblyQualityStandards
}

func totalDuration(tasks []schedule.Task) int {
	total := 0
	for _, task := range tasks {
		total += task.DurationMinutes
	}
	return total
}

func formatTaskTime(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Format(taskTimeLayout)
}
