// ABOUTME: Graphviz rendering of the sales pipeline
// ABOUTME: Contacts link to their opportunities, which link to their stage
package viz

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/google/uuid"

	"github.com/harperreed/socialpulse/crm"
	"github.com/harperreed/socialpulse/db"
	"github.com/harperreed/socialpulse/models"
)

var statusColors = map[string]string{
	models.StatusHot:  "salmon",
	models.StatusWarm: "khaki",
	models.StatusCold: "lightblue",
}

// PipelineGraph is rendered xdot source plus what went into it.
type PipelineGraph struct {
	DOT   string
	Nodes int
	Edges int
}

type GraphGenerator struct {
	db *sql.DB
}

func NewGraphGenerator(database *sql.DB) *GraphGenerator {
	return &GraphGenerator{db: database}
}

// GeneratePipelineGraph renders every contact and opportunity. With a
// contactID only that contact's opportunities are drawn.
func (g *GraphGenerator) GeneratePipelineGraph(ctx context.Context, contactID *uuid.UUID) (*PipelineGraph, error) {
	contacts, err := db.ListContacts(g.db)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contacts: %w", err)
	}
	opps, err := db.ListOpportunities(g.db, "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch opportunities: %w", err)
	}

	if contactID != nil {
		var mine []models.Opportunity
		for _, o := range opps {
			if o.ContactID != nil && *o.ContactID == *contactID {
				mine = append(mine, o)
			}
		}
		opps = mine

		var only []models.Contact
		for _, c := range contacts {
			if c.ID == *contactID {
				only = append(only, c)
			}
		}
		contacts = only
	}

	return RenderPipelineGraph(ctx, contacts, opps)
}

// RenderPipelineGraph draws the given records as xdot.
func RenderPipelineGraph(ctx context.Context, contacts []models.Contact, opps []models.Opportunity) (*PipelineGraph, error) {
	result := &PipelineGraph{}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create graphviz: %w", err)
	}
	defer gv.Close()

	graph, err := gv.Graph()
	if err != nil {
		return nil, fmt.Errorf("failed to create graph: %w", err)
	}
	defer graph.Close()

	graph.SetLabel("Sales Pipeline")
	graph.SetRankDir(cgraph.LRRank)

	contactNodes := make(map[uuid.UUID]*cgraph.Node)
	for _, c := range contacts {
		node, err := graph.CreateNodeByName("contact_" + c.ID.String()[:8])
		if err != nil {
			return nil, fmt.Errorf("failed to create contact node: %w", err)
		}
		node.SetLabel(fmt.Sprintf("%s\n%s", c.Name, c.Company))
		node.SetShape("ellipse")
		node.SetStyle("filled")
		if color, ok := statusColors[c.Status]; ok {
			node.SetFillColor(color)
		}
		contactNodes[c.ID] = node
		result.Nodes++
	}

	stageNodes := make(map[string]*cgraph.Node)
	for _, st := range crm.PipelineByStage(opps) {
		node, err := graph.CreateNodeByName("stage_" + st.Stage)
		if err != nil {
			return nil, fmt.Errorf("failed to create stage node: %w", err)
		}
		node.SetLabel(fmt.Sprintf("%s\n%d · %s", st.Stage, st.Count, money(st.Value)))
		node.SetShape("box")
		node.SetStyle("filled")
		node.SetFillColor("lightgrey")
		stageNodes[st.Stage] = node
		result.Nodes++
	}

	for _, o := range opps {
		node, err := graph.CreateNodeByName("opp_" + o.ID.String()[:8])
		if err != nil {
			return nil, fmt.Errorf("failed to create opportunity node: %w", err)
		}
		node.SetLabel(fmt.Sprintf("%s\n%s · %d%%", o.Title, money(o.Value), o.Probability))
		node.SetShape("diamond")
		node.SetStyle("filled")
		node.SetFillColor("lightyellow")
		result.Nodes++

		if o.ContactID != nil {
			if contactNode, ok := contactNodes[*o.ContactID]; ok {
				edge, err := graph.CreateEdgeByName("owns", contactNode, node)
				if err != nil {
					return nil, fmt.Errorf("failed to create edge: %w", err)
				}
				edge.SetStyle("dotted")
				result.Edges++
			}
		}

		stage := o.Stage
		if stage == "" {
			stage = "unknown"
		}
		if stageNode, ok := stageNodes[stage]; ok {
			if _, err := graph.CreateEdgeByName("in_stage", node, stageNode); err != nil {
				return nil, fmt.Errorf("failed to create edge: %w", err)
			}
			result.Edges++
		}
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return nil, fmt.Errorf("failed to render graph: %w", err)
	}

	result.DOT = buf.String()
	return result, nil
}
