package app

// memFavorites keeps the favorite set for the lifetime of one session.
// Cross-session persistence belongs to the station directory layer, not
// the player.
type memFavorites struct {
	urls map[string]string
}

func (m *memFavorites) Contains(url string) bool {
	_, ok := m.urls[url]
	return ok
}

// Toggle flips membership and reports the new state.
func (m *memFavorites) Toggle(url, name string) bool {
	if m.urls == nil {
		m.urls = make(map[string]string)
	}
	if _, ok := m.urls[url]; ok {
		delete(m.urls, url)
		return false
	}
	m.urls[url] = name
	return true
}
