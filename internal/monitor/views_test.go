package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestView_String(t *testing.T) {
	tests := []struct {
		view     View
		expected string
	}{
		{ViewOverview, "Overview"},
		{ViewCPU, "CPU"},
		{ViewMemory, "Memory"},
		{ViewDisk, "Disk"},
		{ViewNetwork, "Network"},
		{ViewProcesses, "Processes"},
		{View(42), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.view.String())
		})
	}
}

func TestAllViews(t *testing.T) {
	views := AllViews()
	assert.Len(t, views, viewCount)
	assert.Equal(t, ViewOverview, views[0])
	assert.Equal(t, ViewProcesses, views[len(views)-1])
}

func TestView_NextPrev(t *testing.T) {
	assert.Equal(t, ViewCPU, ViewOverview.Next())
	assert.Equal(t, ViewOverview, ViewProcesses.Next())
	assert.Equal(t, ViewProcesses, ViewOverview.Prev())
	assert.Equal(t, ViewNetwork, ViewProcesses.Prev())

	for _, v := range AllViews() {
		assert.Equal(t, v, v.Next().Prev())
		assert.Equal(t, v, v.Prev().Next())
	}
}

func TestTransition_SixAdvancesReturnToStart(t *testing.T) {
	n := Nav{}
	seen := []View{n.View}
	for i := 0; i < 6; i++ {
		n = Transition(n, InputAdvance)
		seen = append(seen, n.View)
	}

	assert.Equal(t, []View{
		ViewOverview, ViewCPU, ViewMemory, ViewDisk, ViewNetwork, ViewProcesses, ViewOverview,
	}, seen)
	assert.False(t, n.Quit)
}

func TestTransition(t *testing.T) {
	tests := []struct {
		name     string
		from     Nav
		input    Input
		expected Nav
	}{
		{"advance", Nav{View: ViewDisk}, InputAdvance, Nav{View: ViewNetwork}},
		{"advance wraps", Nav{View: ViewProcesses}, InputAdvance, Nav{View: ViewOverview}},
		{"retreat", Nav{View: ViewCPU}, InputRetreat, Nav{View: ViewOverview}},
		{"retreat wraps", Nav{View: ViewOverview}, InputRetreat, Nav{View: ViewProcesses}},
		{"none", Nav{View: ViewMemory}, InputNone, Nav{View: ViewMemory}},
		{"quit keeps view", Nav{View: ViewMemory}, InputQuit, Nav{View: ViewMemory, Quit: true}},
		{"advance after quit", Nav{View: ViewMemory, Quit: true}, InputAdvance, Nav{View: ViewMemory, Quit: true}},
		{"retreat after quit", Nav{View: ViewMemory, Quit: true}, InputRetreat, Nav{View: ViewMemory, Quit: true}},
		{"quit after quit", Nav{View: ViewMemory, Quit: true}, InputQuit, Nav{View: ViewMemory, Quit: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Transition(tt.from, tt.input))
		})
	}
}

func TestInput_String(t *testing.T) {
	assert.Equal(t, "none", InputNone.String())
	assert.Equal(t, "advance", InputAdvance.String())
	assert.Equal(t, "retreat", InputRetreat.String())
	assert.Equal(t, "quit", InputQuit.String())
}
