package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/bizdesk/jobs"
)

func TestTaskFor(t *testing.T) {
	task, err := TaskFor(jobs.TaskPayrollRun, "42")
	require.NoError(t, err)
	var run jobs.PayrollRunPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &run))
	assert.Equal(t, int64(42), run.ScheduleID)

	_, err = TaskFor(jobs.TaskPayrollRun, "")
	assert.Error(t, err)

	task, err = TaskFor(jobs.TaskListWarm, "")
	require.NoError(t, err)
	assert.Equal(t, jobs.TaskListWarm, task.Type())

	task, err = TaskFor(jobs.TaskIdempotencyCleanup, "48h")
	require.NoError(t, err)
	var cleanup jobs.IdempotencyCleanupPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &cleanup))
	assert.Equal(t, 48, cleanup.RetentionHours)

	_, err = TaskFor("gl:rebuild", "")
	assert.Error(t, err)
}

func TestRootCommandTree(t *testing.T) {
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--help"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "export")
	assert.Contains(t, out.String(), "jobs")
	assert.Contains(t, out.String(), "migrate")

	root = NewRootCommand()
	root.SetArgs([]string{"jobs", "trigger"})
	assert.Error(t, root.Execute())
}
