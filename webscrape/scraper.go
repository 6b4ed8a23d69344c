package webscrape

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"
)

// Speaker спикер конференции со страницей профиля
type Speaker struct {
	Name             string `json:"name"`
	Title            string `json:"title"`
	Company          string `json:"company"`
	ProfileURL       string `json:"url"`
	ShortDescription string `json:"short_description"`
	Location         string `json:"location"`
	Building         string `json:"building"`
	LongDescription  string `json:"long_description"`
	ConferenceDate   string `json:"conference_date"`
	ConferenceTitle  string `json:"conference_title"`
	ConferenceNote   string `json:"conference_note"`
	LinkedInAccount  string `json:"linkedin_account"`
}

// Config конфигурация скрейпера
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit rate.Limit
}

// Scraper собирает состав спикеров со страницы конференции
// Каждый запрос проходит через лимитер, чтобы не перегружать сайт
type Scraper struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewScraper создает новый скрейпер
func NewScraper(config Config) *Scraper {
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	if config.RateLimit == 0 {
		config.RateLimit = rate.Every(2 * time.Second)
	}

	return &Scraper{
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		limiter: rate.NewLimiter(config.RateLimit, 1),
	}
}

// ScrapeLineup загружает список спикеров и обогащает каждого
// данными его страницы профиля
func (s *Scraper) ScrapeLineup(ctx context.Context) ([]Speaker, error) {
	doc, err := s.fetchDocument(ctx, s.baseURL+"/speakers/")
	if err != nil {
		return nil, fmt.Errorf("failed to load the lineup page: %w", err)
	}

	speakers := s.parseLineup(doc)
	if len(speakers) == 0 {
		return nil, fmt.Errorf("no speakers found on %s", s.baseURL)
	}

	for i := range speakers {
		if speakers[i].ProfileURL == "" {
			continue
		}
		profile, err := s.fetchDocument(ctx, speakers[i].ProfileURL)
		if err != nil {
			return nil, fmt.Errorf("failed to load profile %q: %w", speakers[i].ProfileURL, err)
		}
		s.parseProfile(profile, &speakers[i])
	}

	return speakers, nil
}

// fetchDocument выполняет запрос и разбирает ответ в HTML-документ
// Кодировка ответа определяется по заголовкам и содержимому
func (s *Scraper) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("failed to detect charset: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// parseLineup извлекает карточки спикеров со сводной страницы
func (s *Scraper) parseLineup(doc *goquery.Document) []Speaker {
	var speakers []Speaker
	doc.Find("article.speaker").Each(func(_ int, card *goquery.Selection) {
		speaker := Speaker{
			Name:    strings.TrimSpace(card.Find("div h3").First().Text()),
			Title:   strings.TrimSpace(card.Find("div h4").First().Text()),
			Company: strings.TrimSpace(card.Find("div div").First().Text()),
		}
		if href, ok := card.Find("a").First().Attr("href"); ok {
			speaker.ProfileURL = s.resolveURL(href)
		}
		if speaker.Name != "" {
			speakers = append(speakers, speaker)
		}
	})
	return speakers
}

// parseProfile извлекает данные страницы профиля спикера
// Отсутствующие блоки оставляют поля пустыми, это не ошибка
func (s *Scraper) parseProfile(doc *goquery.Document, speaker *Speaker) {
	if name := strings.TrimSpace(doc.Find("div.content h1").First().Text()); name != "" {
		speaker.Name = name
	}
	speaker.ShortDescription = strings.TrimSpace(doc.Find("div.intro").First().Text())
	speaker.Location = strings.TrimSpace(doc.Find("div.location").First().Text())
	speaker.Building = strings.TrimSpace(doc.Find("div.building").First().Text())
	speaker.LongDescription = strings.TrimSpace(doc.Find("article div.description").First().Text())

	events := doc.Find("div.events article").First()
	speaker.ConferenceDate = strings.TrimSpace(events.Find("span").First().Text())
	speaker.ConferenceTitle = strings.TrimSpace(events.Find("h3").First().Text())
	speaker.ConferenceNote = strings.TrimSpace(events.Find("div").First().Text())

	if href, ok := doc.Find("article nav a").First().Attr("href"); ok {
		speaker.LinkedInAccount = href
	}
}

// resolveURL превращает относительную ссылку в абсолютную
func (s *Scraper) resolveURL(href string) string {
	parsed, err := url.Parse(href)
	if err != nil {
		return href
	}
	if parsed.IsAbs() {
		return href
	}
	base, err := url.Parse(s.baseURL)
	if err != nil {
		return href
	}
	return base.ResolveReference(parsed).String()
}
