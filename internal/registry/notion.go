package registry

import (
	"context"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/pkg/notion"
)

// LoadNotionRoster queries a Notion roster database for active team
// members and groups them into role pools. Page order within a pool
// follows the database's Name sort, which doubles as the tie-break
// order for routing.
func LoadNotionRoster(ctx context.Context, client notion.Client, dbID string) (model.Roster, error) {
	filter := &notionapi.DatabaseQueryRequest{
		Filter: notionapi.PropertyFilter{
			Property: "Status",
			Status: &notionapi.StatusFilterCondition{
				Equals: "Active",
			},
		},
		Sorts: []notionapi.SortObject{
			{Property: "Name", Direction: notionapi.SortOrderASC},
		},
	}

	pages, err := notion.QueryAll(ctx, client, dbID, filter)
	if err != nil {
		return nil, eris.Wrap(err, "registry: load notion roster")
	}

	roster := model.Roster{}
	for _, p := range pages {
		role, owner, err := parseMemberPage(p)
		if err != nil {
			zap.L().Warn("registry: skipping malformed roster page",
				zap.String("page_id", string(p.ID)),
				zap.Error(err),
			)
			continue
		}
		roster[role] = append(roster[role], owner)
	}

	if len(roster) == 0 {
		return nil, eris.New("registry: notion roster is empty")
	}
	return roster, nil
}

func parseMemberPage(p notionapi.Page) (string, model.Owner, error) {
	var owner model.Owner
	var role string

	// Name (title)
	if prop, ok := p.Properties["Name"]; ok {
		if tp, ok := prop.(*notionapi.TitleProperty); ok {
			owner.Name = notion.PlainText(tp.Title)
		}
	}

	// Email (email)
	if prop, ok := p.Properties["Email"]; ok {
		if ep, ok := prop.(*notionapi.EmailProperty); ok {
			owner.Email = ep.Email
		}
	}

	// Role (select)
	if prop, ok := p.Properties["Role"]; ok {
		if sp, ok := prop.(*notionapi.SelectProperty); ok {
			role = sp.Select.Name
		}
	}

	// Capacity (number)
	if prop, ok := p.Properties["Capacity"]; ok {
		if np, ok := prop.(*notionapi.NumberProperty); ok {
			owner.Capacity = int(np.Number)
		}
	}

	if owner.Name == "" {
		return "", owner, eris.New("missing Name property")
	}
	if role == "" {
		return "", owner, eris.New("missing Role property")
	}
	return role, owner, nil
}
