package task_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/idmsim/task"
	"github.com/tsinghua-fib-lab/idmsim/utils/config"
)

const mapYaml = `
lanes:
  - id: 1
    width: 3.5
    max_speed: 15
    center_line: [{x: 0, y: 0}, {x: 100, y: 0}]
    successors: [2]
  - id: 2
    is_connector: true
    width: 3.5
    max_speed: 15
    center_line: [{x: 100, y: 0}, {x: 114, y: 0}]
    predecessors: [1]
    successors: [3]
  - id: 3
    width: 3.5
    max_speed: 15
    center_line: [{x: 114, y: 0}, {x: 160, y: 0}]
    predecessors: [2]
`

const agentsYaml = `
agents:
  - id: 1
    lane_id: 1
    s: 10
    v: 0
    length: 4
    width: 2
    target_v: 10
  - id: 2
    lane_id: 1
    s: 40
    v: 5
    length: 4
    width: 2
    target_v: 10
`

const scenarioYaml = `
iterations:
  - {index: 0, time_s: 0.0}
  - {index: 1, time_s: 0.5}
  - {index: 2, time_s: 1.0}
  - {index: 3, time_s: 1.5}
  - {index: 4, time_s: 2.0}
  - {index: 5, time_s: 2.5}
traffic_lights:
  - {iteration: 1, lane_connector_id: "2", state: "GREEN"}
  - {iteration: 2, lane_connector_id: "2", state: "GREEN"}
ego:
  - {iteration: 0, x: 60, y: 0, heading: 0, v: 8, length: 4, width: 2}
`

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	c := config.Config{
		Input: config.Input{
			Map:    config.InputPath{File: writeFile(t, dir, "map.yml", mapYaml)},
			Agents: config.InputPath{File: writeFile(t, dir, "agents.yml", agentsYaml)},
			Scenario: &config.InputPath{
				File: writeFile(t, dir, "scenario.yml", scenarioYaml),
			},
		},
		Control: config.Control{Step: config.ControlStep{Start: 0, Total: 5, Interval: 0.1}},
	}
	ctx := task.NewContext(c)
	require.NoError(t, ctx.Run())

	// 场景时间戳驱动：5步各0.5秒
	assert.Equal(t, int32(5), ctx.Clock().InternalStep)
	assert.InDelta(t, 2.5, ctx.Clock().T, 1e-9)

	res := ctx.Observation().GetObservation(5)
	require.Len(t, res.Tracks, 2)
	// 两个agent均前进
	assert.Greater(t, res.Tracks[0].XYZ.X, 10.0)
	assert.Greater(t, res.Tracks[1].XYZ.X, 40.0)
	assert.Less(t, res.Tracks[0].XYZ.X, res.Tracks[1].XYZ.X)
}

func TestRunDefaultInterval(t *testing.T) {
	dir := t.TempDir()
	c := config.Config{
		Input: config.Input{
			Map:    config.InputPath{File: writeFile(t, dir, "map.yml", mapYaml)},
			Agents: config.InputPath{File: writeFile(t, dir, "agents.yml", agentsYaml)},
		},
		Control: config.Control{Step: config.ControlStep{Start: 0, Total: 10, Interval: 0.1}},
	}
	ctx := task.NewContext(c)
	require.NoError(t, ctx.Run())
	// 无场景时间戳时按默认步长推进
	assert.InDelta(t, 1.0, ctx.Clock().T, 1e-9)
}
