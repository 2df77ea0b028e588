// ABOUTME: Pipeline board rendered as a Graphviz graph
// ABOUTME: Stages form a left-to-right chain and each contact hangs off its current stage
package viz

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/google/uuid"
	"github.com/harperreed/boxcrm/ingest"
	"github.com/harperreed/boxcrm/models"
)

var stageColors = map[string]string{
	models.StageNew:           "lightgrey",
	models.StageActive:        "lightblue",
	models.StageHot:           "salmon",
	models.StageUnderContract: "lightyellow",
	models.StageClosed:        "lightgreen",
}

type GraphGenerator struct {
	svc *ingest.Service
}

func NewGraphGenerator(svc *ingest.Service) *GraphGenerator {
	return &GraphGenerator{svc: svc}
}

// GeneratePipelineGraph renders a workspace's pipeline in the given format
// (graphviz.XDOT for DOT source, graphviz.SVG or graphviz.PNG for images).
func (g *GraphGenerator) GeneratePipelineGraph(ctx context.Context, workspaceID uuid.UUID, format graphviz.Format) ([]byte, error) {
	ws, err := g.svc.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	entries, err := g.svc.ListPipeline(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create graphviz instance: %w", err)
	}
	defer gv.Close()

	graph, err := gv.Graph()
	if err != nil {
		return nil, fmt.Errorf("failed to create graph: %w", err)
	}
	defer graph.Close()

	graph.SetLabel(fmt.Sprintf("%s pipeline", ws.Name))
	graph.SetRankDir(cgraph.LRRank)

	counts := make(map[string]int)
	for _, e := range entries {
		counts[e.Stage]++
	}

	stageNodes := make(map[string]*cgraph.Node)
	var prev *cgraph.Node
	for _, stage := range models.Stages {
		node, err := graph.CreateNodeByName("stage_" + stage)
		if err != nil {
			return nil, fmt.Errorf("failed to create stage node: %w", err)
		}
		node.SetLabel(fmt.Sprintf("%s\n(%d)", stage, counts[stage]))
		node.SetShape("box")
		node.SetStyle("filled")
		node.SetFillColor(stageColors[stage])
		stageNodes[stage] = node

		if prev != nil {
			edge, err := graph.CreateEdgeByName("next_"+stage, prev, node)
			if err != nil {
				return nil, fmt.Errorf("failed to create stage edge: %w", err)
			}
			edge.SetStyle("dashed")
		}
		prev = node
	}

	for _, e := range entries {
		node, err := graph.CreateNodeByName(fmt.Sprintf("contact_%s", e.ContactID.String()[:8]))
		if err != nil {
			return nil, fmt.Errorf("failed to create contact node: %w", err)
		}
		node.SetLabel(fmt.Sprintf("%s\nscore %d", e.ContactName, e.CredibilityScore))
		node.SetShape("ellipse")

		stageNode, ok := stageNodes[e.Stage]
		if !ok {
			continue
		}
		edge, err := graph.CreateEdgeByName("in_"+e.ID.String()[:8], stageNode, node)
		if err != nil {
			return nil, fmt.Errorf("failed to create edge: %w", err)
		}
		if e.NextAction != "" {
			edge.SetLabel(e.NextAction)
		}
		edge.SetDir("none")
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, format, &buf); err != nil {
		return nil, fmt.Errorf("failed to render graph: %w", err)
	}

	return buf.Bytes(), nil
}
