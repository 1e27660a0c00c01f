// ABOUTME: Builds the MCP server with every tool, resource and prompt registered
// ABOUTME: Shared by the mcp subcommand and the handler tests
package handlers

import (
	"database/sql"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/harperreed/socialpulse/analytics"
	"github.com/harperreed/socialpulse/copilot"
	"github.com/harperreed/socialpulse/models"
)

type ServerOptions struct {
	DB       *sql.DB
	Store    *analytics.Store
	Identity models.Identity
	Matcher  *copilot.Matcher
	Logger   *zap.Logger
	Version  string
}

// NewServer returns an MCP server wired to opts. A nil Store gets a fresh seeded one.
func NewServer(opts ServerOptions) *mcp.Server {
	if opts.Store == nil {
		opts.Store = analytics.NewStore()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	copilotHandlers := NewCopilotHandlers(opts.Matcher)
	contactHandlers := NewContactHandlers(opts.DB)
	opportunityHandlers := NewOpportunityHandlers(opts.DB)
	npsHandlers := NewNPSHandlers(opts.DB)
	widgetHandlers := NewWidgetHandlers(opts.Store, opts.DB)
	monitoringHandlers := NewMonitoringHandlers(opts.DB, opts.Identity, opts.Logger)
	vizHandlers := NewVizHandlers(opts.DB, opts.Identity)
	resourceHandlers := NewResourceHandlers(opts.DB, opts.Store)
	promptHandlers := NewPromptHandlers(opts.DB, opts.Identity)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "socialpulse",
		Version: opts.Version,
	}, nil)

	// Copilot
	mcp.AddTool(server, &mcp.Tool{
		Name:        "ask_copilot",
		Description: "Ask the dashboard copilot a question about the platform",
	}, copilotHandlers.AskCopilot)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "copilot_suggestions",
		Description: "List the proactive insight cards shown next to the copilot",
	}, copilotHandlers.Suggestions)

	// Contacts and opportunities
	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_contact",
		Description: "Add a new lead contact",
	}, contactHandlers.AddContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_contacts",
		Description: "Search contacts by name or company, optionally filtered by status",
	}, contactHandlers.FindContacts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_contact_status",
		Description: "Change a contact's lead temperature (hot, warm or cold)",
	}, contactHandlers.UpdateContactStatus)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_opportunity",
		Description: "Create a sales opportunity, optionally linked to a contact",
	}, opportunityHandlers.AddOpportunity)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "pipeline_summary",
		Description: "Total, average probability and per-stage breakdown of the pipeline",
	}, opportunityHandlers.PipelineSummary)

	// NPS
	mcp.AddTool(server, &mcp.Tool{
		Name:        "submit_nps",
		Description: "Record a 0-10 Net Promoter Score response",
	}, npsHandlers.SubmitNPS)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "nps_summary",
		Description: "Compute the NPS score and promoter/passive/detractor counts",
	}, npsHandlers.NPSSummary)

	// Widgets
	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_widget",
		Description: "Add a metric, bar, pie or line widget to a dashboard",
	}, widgetHandlers.AddWidget)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "remove_widget",
		Description: "Remove a widget from a dashboard",
	}, widgetHandlers.RemoveWidget)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_widgets",
		Description: "Show a dashboard and its widgets in display order",
	}, widgetHandlers.ListWidgets)

	// Monitoring
	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_sentiment",
		Description: "Score text from -1 (negative) to 1 (positive)",
	}, monitoringHandlers.AnalyzeSentiment)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "fetch_mentions",
		Description: "Fetch and store brand mentions for the signed-in user",
	}, monitoringHandlers.FetchMentions)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "discover_influencers",
		Description: "Discover influencers in a category on a platform",
	}, monitoringHandlers.DiscoverInfluencers)

	// Visualization
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_graph",
		Description: "Render the pipeline as a GraphViz graph",
	}, vizHandlers.GenerateGraph)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "dashboard_report",
		Description: "Text dashboard with pipeline, contacts, NPS and mention sentiment",
	}, vizHandlers.DashboardReport)

	for _, r := range []*mcp.Resource{
		{URI: ResourceScheme + "contacts", Name: "contacts", Description: "All contacts", MIMEType: "application/json"},
		{URI: ResourceScheme + "opportunities", Name: "opportunities", Description: "All opportunities", MIMEType: "application/json"},
		{URI: ResourceScheme + "pipeline", Name: "pipeline", Description: "Pipeline summary by stage", MIMEType: "application/json"},
		{URI: ResourceScheme + "nps", Name: "nps", Description: "NPS summary", MIMEType: "application/json"},
		{URI: ResourceScheme + "dashboards", Name: "dashboards", Description: "Dashboards and widgets", MIMEType: "application/json"},
	} {
		server.AddResource(r, resourceHandlers.ReadResource)
	}

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: ResourceScheme + "contacts/{id}",
		Name:        "contact",
		Description: "A contact with its opportunities",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadResource)

	for _, p := range Prompts() {
		server.AddPrompt(p, promptHandlers.GetPrompt)
	}

	return server
}
