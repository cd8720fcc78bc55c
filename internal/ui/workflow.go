package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// spinnerFrames defines the spinner animation frames
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// TaskStatus represents the status of a task
type TaskStatus int

const (
	TaskPending TaskStatus = iota
	TaskRunning
	TaskDone
	TaskFailed
	TaskSkipped
)

// Task is one step of a search run (query, normalize, resolve links, export).
type Task struct {
	Name    string
	Status  TaskStatus
	Message string
	Details string // shown once the task is done
}

// Workflow renders a list of steps with a spinner on the running one.
// With a nil writer every call is a no-op apart from state tracking.
type Workflow struct {
	writer     io.Writer
	title      string
	tasks      []*Task
	mu         sync.Mutex
	spinnerIdx int
	stopChan   chan struct{}
	doneChan   chan struct{}
	running    bool
	animate    bool
	lastRender string
}

// NewWorkflow creates a workflow tracker. animate enables the redraw loop,
// which should only be used on an interactive terminal.
func NewWorkflow(w io.Writer, title string, animate bool) *Workflow {
	return &Workflow{
		writer:   w,
		title:    title,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
		animate:  animate && w != nil,
	}
}

// AddTask adds a step and returns its index.
func (wf *Workflow) AddTask(name string) int {
	wf.mu.Lock()
	defer wf.mu.Unlock()
	wf.tasks = append(wf.tasks, &Task{Name: name, Status: TaskPending})
	return len(wf.tasks) - 1
}

func (wf *Workflow) set(idx int, fn func(t *Task)) {
	wf.mu.Lock()
	defer wf.mu.Unlock()
	if idx >= 0 && idx < len(wf.tasks) {
		fn(wf.tasks[idx])
	}
}

// StartTask marks a step as running.
func (wf *Workflow) StartTask(idx int, message string) {
	wf.set(idx, func(t *Task) { t.Status, t.Message = TaskRunning, message })
}

// CompleteTask marks a step as done.
func (wf *Workflow) CompleteTask(idx int, details string) {
	wf.set(idx, func(t *Task) { t.Status, t.Details = TaskDone, details })
}

// FailTask marks a step as failed.
func (wf *Workflow) FailTask(idx int, errMsg string) {
	wf.set(idx, func(t *Task) { t.Status, t.Message = TaskFailed, errMsg })
}

// SkipTask marks a step as skipped.
func (wf *Workflow) SkipTask(idx int, reason string) {
	wf.set(idx, func(t *Task) { t.Status, t.Message = TaskSkipped, reason })
}

// Tasks returns a snapshot of the steps.
func (wf *Workflow) Tasks() []Task {
	wf.mu.Lock()
	defer wf.mu.Unlock()
	out := make([]Task, len(wf.tasks))
	for i, t := range wf.tasks {
		out[i] = *t
	}
	return out
}

// Start prints the title and begins the spinner loop when animated.
func (wf *Workflow) Start() {
	wf.mu.Lock()
	if wf.running {
		wf.mu.Unlock()
		return
	}
	wf.running = true
	if wf.writer != nil && wf.title != "" {
		fmt.Fprintln(wf.writer, SectionHeader.Render(wf.title))
	}
	wf.mu.Unlock()

	if !wf.animate {
		close(wf.doneChan)
		return
	}

	go func() {
		defer close(wf.doneChan)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-wf.stopChan:
				return
			case <-ticker.C:
				wf.mu.Lock()
				wf.spinnerIdx = (wf.spinnerIdx + 1) % len(spinnerFrames)
				wf.mu.Unlock()
				wf.render()
			}
		}
	}()
}

// Stop ends the animation and prints the final state of every step.
func (wf *Workflow) Stop() {
	wf.mu.Lock()
	if !wf.running {
		wf.mu.Unlock()
		return
	}
	wf.running = false
	wf.mu.Unlock()

	close(wf.stopChan)
	<-wf.doneChan
	wf.renderFinal()
}

func (wf *Workflow) clearPrevious(b *strings.Builder) {
	if wf.lastRender == "" {
		return
	}
	lineCount := strings.Count(wf.lastRender, "\n") + 1
	for i := 0; i < lineCount; i++ {
		b.WriteString("\033[A\033[K")
	}
}

func (wf *Workflow) render() {
	wf.mu.Lock()
	defer wf.mu.Unlock()

	var b strings.Builder
	wf.clearPrevious(&b)
	for _, task := range wf.tasks {
		b.WriteString(wf.renderTask(task, false))
		b.WriteString("\n")
	}

	output := b.String()
	wf.lastRender = strings.TrimSuffix(output, "\n")
	fmt.Fprint(wf.writer, output)
}

func (wf *Workflow) renderFinal() {
	if wf.writer == nil {
		return
	}
	wf.mu.Lock()
	defer wf.mu.Unlock()

	var b strings.Builder
	wf.clearPrevious(&b)
	for _, task := range wf.tasks {
		b.WriteString(wf.renderTask(task, true))
		b.WriteString("\n")
	}
	wf.lastRender = ""
	fmt.Fprint(wf.writer, b.String())
}

func (wf *Workflow) renderTask(task *Task, final bool) string {
	var icon string
	var nameStyle styleWrapper

	switch task.Status {
	case TaskRunning:
		if final {
			icon, nameStyle = Muted.Render("○"), StepPending
		} else {
			icon, nameStyle = Secondary.Render(spinnerFrames[wf.spinnerIdx]), StepRunning
		}
	case TaskDone:
		icon, nameStyle = GetCheckMark(), StepComplete
	case TaskFailed:
		icon, nameStyle = GetCrossMark(), StepFailed
	case TaskSkipped:
		icon, nameStyle = Warning.Render("⊘"), StepSkipped
	default:
		icon, nameStyle = Muted.Render("○"), StepPending
	}

	line := fmt.Sprintf("%s %s", icon, nameStyle.Render(task.Name))

	switch {
	case task.Status == TaskDone && task.Details != "":
		line += " " + Dim.Render("→ "+task.Details)
	case task.Status == TaskFailed && task.Message != "":
		line += " " + Error.Render("→ "+task.Message)
	case task.Status == TaskSkipped && task.Message != "":
		line += " " + Warning.Render("→ "+task.Message)
	case !final && task.Status == TaskRunning && task.Message != "":
		line += " " + Secondary.Render(task.Message)
	}
	return line
}

// SimpleSpinner provides an inline spinner for a single short operation.
type SimpleSpinner struct {
	writer     io.Writer
	message    string
	stopChan   chan struct{}
	doneChan   chan struct{}
	running    bool
	mu         sync.Mutex
	spinnerIdx int
}

// NewSimpleSpinner creates a new simple spinner
func NewSimpleSpinner(w io.Writer, message string) *SimpleSpinner {
	return &SimpleSpinner{
		writer:   w,
		message:  message,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
}

// Start begins the spinner animation
func (s *SimpleSpinner) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	go func() {
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()
		defer close(s.doneChan)

		for {
			select {
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.mu.Lock()
				s.spinnerIdx = (s.spinnerIdx + 1) % len(spinnerFrames)
				frame := spinnerFrames[s.spinnerIdx]
				msg := s.message
				s.mu.Unlock()

				fmt.Fprintf(s.writer, "\r\033[K%s %s", Secondary.Render(frame), msg)
			}
		}
	}()
}

// Stop ends the spinner with a result line.
func (s *SimpleSpinner) Stop(success bool, finalMessage string) {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopChan)
	<-s.doneChan

	fmt.Fprint(s.writer, "\r\033[K")
	if success {
		fmt.Fprintf(s.writer, "%s %s\n", GetCheckMark(), finalMessage)
	} else {
		fmt.Fprintf(s.writer, "%s %s\n", GetCrossMark(), Error.Render(finalMessage))
	}
}
