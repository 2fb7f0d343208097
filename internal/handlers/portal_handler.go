package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PortalHandler serves the static navigation structure the portal pages render.
type PortalHandler struct{}

func NewPortalHandler() *PortalHandler { return &PortalHandler{} }

type navItem struct {
	Name string `json:"name"`
	Href string `json:"href"`
}

var sidebarItems = []navItem{
	{Name: "Announcements", Href: "/announcements"},
	{Name: "Asset Management", Href: "/assets"},
	{Name: "Warranty Checker", Href: "/warranty-checker"},
	{Name: "Register Warranty", Href: "/warranty/register"},
	{Name: "Activate Purchase", Href: "/registration"},
	{Name: "Feedback", Href: "/feedback"},
}

var headerLinks = []navItem{
	{Name: "Documentation", Href: "/downloads"},
	{Name: "Knowledge", Href: "/knowledge"},
	{Name: "Assets", Href: "/assets"},
	{Name: "Purchase", Href: "/registration"},
	{Name: "About", Href: "/about"},
}

// Navigation returns the sidebar and header link sets as one payload.
func (h *PortalHandler) Navigation(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"sidebar": sidebarItems,
		"header":  headerLinks,
	})
}
