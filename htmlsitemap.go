// Package htmlsitemap renders a filtered, nested HTML list of the published
// pages of a site. Pages are selected by depth bounds and by their
// navigation flag, ordered in pre-order and annotated with the nesting
// information a renderer needs to open and close list levels.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, etree/, htmltomarkdown/).
package htmlsitemap
