package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags() {
	problemPath, graphPath, formulaStr = "", "", ""
	schemeName, prefix = "edge", "V"
	balanced, verbose, enumerate = false, false, false
	solverName = "gophersat"
}

func TestBuildPipelineFromProblem(t *testing.T) {
	resetFlags()
	problemPath = writeProblem(t, `
formula: edg(x, y) & (~ x = y)
scheme: direct
graph:
  vertices: [1, 2, 3]
  edges: [[1, 2], [2, 3]]
`)
	pl, err := buildPipeline()
	require.NoError(t, err)
	assert.Equal(t, 2, len(pl.free))
	assert.Greater(t, pl.cnf.NCls(), 0)
	sat, model, err := solveOnce(pl.cnf.Clauses(), pl.cnf.NVars())
	require.NoError(t, err)
	require.True(t, sat)
	require.NoError(t, pl.printModel(model))
}

func TestBuildPipelineMissingInputs(t *testing.T) {
	resetFlags()
	_, err := buildPipeline()
	assert.Error(t, err, "no graph and no formula")

	resetFlags()
	formulaStr = "edg(x, y)"
	_, err = buildPipeline()
	assert.Error(t, err, "no graph")
}

func TestCountModelsBackendsAgree(t *testing.T) {
	resetFlags()
	problemPath = writeProblem(t, `
formula: (~ edg(x, y)) & (~ x = y)
graph:
  vertices: [1, 2, 3]
  edges: [[1, 2], [2, 3]]
`)
	pl, err := buildPipeline()
	require.NoError(t, err)
	solverName = "gophersat"
	ng, err := countModels(pl.cnf.Clauses(), pl.cnf.NVars())
	require.NoError(t, err)
	solverName = "gini"
	ni, err := countModels(pl.cnf.Clauses(), pl.cnf.NVars())
	require.NoError(t, err)
	// vertices 1 and 3 are the only non-adjacent distinct pair, in both
	// orders
	assert.Equal(t, 2, ng)
	assert.Equal(t, 2, ni)
}
