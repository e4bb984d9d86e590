package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"geowkt/internal/feature"
	"geowkt/internal/geom"
)

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		m.status = "view mode"
		return m, nil
	case "enter":
		w := strings.TrimSpace(m.ta.Value())
		if w == "" {
			m.status = "paste: empty"
			return m, nil
		}
		g, err := geom.ParseWKT(w)
		if err != nil {
			log.Debug().Err(err).Msg("Pasted WKT rejected")
			m.status = fmt.Sprintf("wkt error [%s]: %s", geom.Category(err), firstLine(err.Error()))
			return m, nil
		}
		m.setCollection(feature.NewCollection(feature.NewFeature(g)), "")
		m.status = "rendered WKT  " + m.countsLabel()
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

// step moves the collection cursor and shows the feature under it.
func (m *Model) step(forward bool) {
	var ok bool
	if forward {
		_, ok = m.features.MoveNext()
	} else {
		_, ok = m.features.MoveBack(1)
	}
	cur, _ := m.features.Current()
	if !ok || cur == nil {
		if forward && m.features.IsEnd() {
			m.status = "last feature"
		} else {
			m.inspectPopup = ""
			m.status = "before first feature"
		}
		return
	}
	for i := 0; i < m.features.Len(); i++ {
		if m.features.At(i) == cur {
			m.inspectPopup = m.describeFeature(i)
			m.status = fmt.Sprintf("feature %d/%d", i+1, m.features.Len())
			return
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.layout().mapH-2)
		}
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "1":
			m.showPoints = !m.showPoints
			m.status = fmt.Sprintf("points: %v", m.showPoints)
		case "2":
			m.showLines = !m.showLines
			m.status = fmt.Sprintf("lines: %v", m.showLines)
		case "3":
			m.showPolys = !m.showPolys
			m.status = fmt.Sprintf("polys: %v", m.showPolys)
		case "+", "=":
			if m.zoom < 64 {
				m.zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "-", "_":
			if m.zoom > 0.05 {
				m.zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "0":
			m.zoom = 1.0
			m.offsetX, m.offsetY = 0, 0
			m.status = "view reset"
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
				m.l.SetSize(sidebarWidth-2, m.layout().mapH-2)
			}
		case "p":
			m.pasteMode = true
			m.ta.SetValue("")
			m.status = "paste mode"
			m.ta.Focus()
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			m.showAttrs = !m.showAttrs
			if m.showAttrs {
				m.refreshAttrsFromCurrent()
			}
		case "i":
			if i, ok := m.inspectNearest(); ok {
				m.inspectPopup = m.describeFeature(i)
				m.status = "inspect popup"
			} else {
				m.inspectPopup = "no feature nearby"
				m.status = m.inspectPopup
			}
		case "n":
			m.step(true)
		case "b":
			m.step(false)
		case "esc":
			m.inspectPopup = ""
		case "l":
			// toggle all layers
			all := m.showPoints && m.showLines && m.showPolys
			m.showPoints = !all
			m.showLines = !all
			m.showPolys = !all
			m.status = fmt.Sprintf("layers: pts=%v ls=%v poly=%v", m.showPoints, m.showLines, m.showPolys)
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
				}
			}
		case "up":
			m.offsetY -= 1
		case "down":
			m.offsetY += 1
		case "left":
			m.offsetX -= 2
		case "right":
			m.offsetX += 2
		}
	case tea.MouseMsg:
		m.hover(msg.X, msg.Y)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

// hover tracks the mouse over the map area and snaps to the nearest vertex.
func (m *Model) hover(x, y int) {
	lay := m.layout()
	if x < lay.mapX || x >= lay.mapX+lay.mapW || y < lay.mapY || y >= lay.mapY+lay.mapH {
		m.hovering = false
		m.hoverHasGeo = false
		return
	}
	m.hovering = true
	m.hoverCellX = x - lay.mapX
	m.hoverCellY = y - lay.mapY
	m.hoverLon, m.hoverLat, m.hoverHasGeo = m.cellToLonLat(m.hoverCellX, m.hoverCellY, lay.mapW, lay.mapH)

	hxMic, hyMic := m.hoverCellX*2, m.hoverCellY*4
	bx, by, _, ok := m.nearestVertex(hxMic, hyMic, func(lon, lat float64) (int, int, bool) {
		return m.screenXYMicro(lon, lat, lay.mapW, lay.mapH)
	})
	if !ok {
		bx, by = hxMic, hyMic
	}
	m.hoverMicX, m.hoverMicY = bx, by
}
