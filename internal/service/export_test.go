package service

// SetBaseURL points the Data Dragon client at a test server.
func (s *ChampionService) SetBaseURL(url string) {
	s.baseURL = url
}
