package api

import (
	"context"
	"net/http"

	"github.com/vesselfinder/client-go/internal/apierrors"
)

// Success messages reported for list manager changes, which the server
// acknowledges with an empty body.
const (
	MsgListManagerAdded    = "Successfully added to your ListManager."
	MsgListManagerReplaced = "Successfully replaced your ListManager."
	MsgListManagerDeleted  = "Successfully deleted from your ListManager."
)

// Status returns the account status.
func (c *Client) Status(ctx context.Context, p Params) (*Result, error) {
	return c.Dispatch(ctx, ResourceStatus, http.MethodGet, "", p)
}

// Vessels returns the latest positions of the given vessels.
func (c *Client) Vessels(ctx context.Context, p Params) (*Result, error) {
	return c.Dispatch(ctx, ResourceVessels, http.MethodGet, "", p)
}

// VesselsList returns the positions of the vessels in the list manager.
func (c *Client) VesselsList(ctx context.Context, p Params) (*Result, error) {
	return c.Dispatch(ctx, ResourceVesselsList, http.MethodGet, "", p)
}

// LiveData returns the live data feed.
func (c *Client) LiveData(ctx context.Context, p Params) (*Result, error) {
	return c.Dispatch(ctx, ResourceLiveData, http.MethodGet, "", p)
}

// PortCalls returns port calls of vessels or of a port. At least one of
// imo, mmsi and locode is required, and the three may not all be set.
func (c *Client) PortCalls(ctx context.Context, p Params) (*Result, error) {
	hasIMO, hasMMSI, hasLocode := p.Has(ParamIMO), p.Has(ParamMMSI), p.Has(ParamLocode)
	if !hasIMO && !hasMMSI && !hasLocode {
		return nil, apierrors.InvalidArguments("At least one IMO number or MMSI number or Port LOCODE is required. " +
			"Any combination between several IMO and MMSI numbers is possible but combination between IMO/MMSI numbers and Port LOCODE is not allowed.")
	}
	if hasIMO && hasMMSI && hasLocode {
		return nil, apierrors.InvalidArguments("Combination between IMO/MMSI numbers and Port LOCODE is not allowed.")
	}
	return c.Dispatch(ctx, ResourcePortCalls, http.MethodGet, "", p)
}

// ExpectedArrivals returns the vessels expected in a port. A timespan is
// required: interval, fromdate or todate.
func (c *Client) ExpectedArrivals(ctx context.Context, p Params) (*Result, error) {
	if !p.Has(ParamInterval) && !p.Has(ParamFromDate) && !p.Has(ParamToDate) {
		return nil, apierrors.InvalidArguments("The request should contain timespan specified by interval or fromdate / todate parameters!")
	}
	return c.Dispatch(ctx, ResourceExpectedArrivals, http.MethodGet, "", p)
}

// MasterData returns static vessel particulars.
func (c *Client) MasterData(ctx context.Context, p Params) (*Result, error) {
	return c.Dispatch(ctx, ResourceMasterData, http.MethodGet, "", p)
}

// Distance returns the sea route distance between two points.
func (c *Client) Distance(ctx context.Context, p Params) (*Result, error) {
	return c.Dispatch(ctx, ResourceDistance, http.MethodGet, "", p)
}

// GetListManager returns the vessels saved in the list manager.
func (c *Client) GetListManager(ctx context.Context, p Params) (*Result, error) {
	return c.Dispatch(ctx, ResourceListManager, http.MethodGet, "", p)
}

// ListManagerAdd adds vessels to the list manager.
func (c *Client) ListManagerAdd(ctx context.Context, p Params) (*Result, error) {
	return c.changeListManager(ctx, http.MethodPost, MsgListManagerAdded, p)
}

// ListManagerReplace replaces all vessels in the list manager.
func (c *Client) ListManagerReplace(ctx context.Context, p Params) (*Result, error) {
	return c.changeListManager(ctx, http.MethodPut, MsgListManagerReplaced, p)
}

// ListManagerDelete removes vessels from the list manager.
func (c *Client) ListManagerDelete(ctx context.Context, p Params) (*Result, error) {
	return c.changeListManager(ctx, http.MethodDelete, MsgListManagerDeleted, p)
}

func (c *Client) changeListManager(ctx context.Context, method, msg string, p Params) (*Result, error) {
	if !p.Has(ParamIMO) && !p.Has(ParamMMSI) {
		return nil, apierrors.InvalidArguments("Vessels may be specified by list of IMO or MMSI numbers or both!")
	}
	return c.Dispatch(ctx, ResourceListManager, method, msg, p)
}
