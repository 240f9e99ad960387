package client

import (
	"context"

	"tibiaweb/tibia"
)

func (c *Client) FetchCharacter(ctx context.Context, name string) (*tibia.Character, error) {
	content, err := c.get(ctx, tibia.CharacterURL(name))
	if err != nil {
		return nil, err
	}
	return tibia.ParseCharacter(content)
}

func (c *Client) FetchWorld(ctx context.Context, name string) (*tibia.World, error) {
	content, err := c.get(ctx, tibia.WorldURL(name))
	if err != nil {
		return nil, err
	}
	return tibia.ParseWorld(content)
}

func (c *Client) FetchWorldOverview(ctx context.Context) (*tibia.WorldOverview, error) {
	content, err := c.get(ctx, tibia.WorldOverviewURL())
	if err != nil {
		return nil, err
	}
	return tibia.ParseWorldOverview(content)
}

func (c *Client) FetchGuild(ctx context.Context, name string) (*tibia.Guild, error) {
	content, err := c.get(ctx, tibia.GuildURL(name))
	if err != nil {
		return nil, err
	}
	return tibia.ParseGuild(content)
}

func (c *Client) FetchGuildWars(ctx context.Context, name string) (*tibia.GuildWars, error) {
	content, err := c.get(ctx, tibia.GuildWarsURL(name))
	if err != nil {
		return nil, err
	}
	return tibia.ParseGuildWars(content)
}

func (c *Client) FetchGuildsSection(ctx context.Context, world string) (*tibia.GuildsSection, error) {
	content, err := c.get(ctx, tibia.GuildsSectionURL(world))
	if err != nil {
		return nil, err
	}
	return tibia.ParseGuildsSection(content)
}

func (c *Client) FetchHouse(ctx context.Context, houseID int, world string) (*tibia.House, error) {
	content, err := c.get(ctx, tibia.HouseURL(houseID, world))
	if err != nil {
		return nil, err
	}
	return tibia.ParseHouse(content)
}

func (c *Client) FetchHousesSection(ctx context.Context, world, town string, houseType tibia.HouseType) (*tibia.HousesSection, error) {
	content, err := c.get(ctx, tibia.HousesSectionURL(world, town, houseType))
	if err != nil {
		return nil, err
	}
	return tibia.ParseHousesSection(content)
}

func (c *Client) FetchHighscores(ctx context.Context, world string, category tibia.HighscoresCategory, page int) (*tibia.Highscores, error) {
	content, err := c.get(ctx, tibia.HighscoresURL(world, category, page))
	if err != nil {
		return nil, err
	}
	return tibia.ParseHighscores(content)
}

func (c *Client) FetchKillStatistics(ctx context.Context, world string) (*tibia.KillStatistics, error) {
	content, err := c.get(ctx, tibia.KillStatisticsURL(world))
	if err != nil {
		return nil, err
	}
	return tibia.ParseKillStatistics(content)
}

func (c *Client) FetchLeaderboard(ctx context.Context, world string, rotation, page int) (*tibia.Leaderboard, error) {
	content, err := c.get(ctx, tibia.LeaderboardURL(world, rotation, page))
	if err != nil {
		return nil, err
	}
	return tibia.ParseLeaderboard(content)
}

func (c *Client) FetchNewsArchive(ctx context.Context) (*tibia.NewsArchive, error) {
	content, err := c.get(ctx, tibia.NewsArchiveURL())
	if err != nil {
		return nil, err
	}
	return tibia.ParseNewsArchive(content)
}

// FetchNews fetches a single news article. The article id is not part of
// the page markup, so it is filled in from the request.
func (c *Client) FetchNews(ctx context.Context, newsID int) (*tibia.News, error) {
	content, err := c.get(ctx, tibia.NewsURL(newsID))
	if err != nil {
		return nil, err
	}
	news, err := tibia.ParseNews(content)
	if news != nil {
		news.ID = newsID
	}
	return news, err
}

func (c *Client) FetchEventSchedule(ctx context.Context, month, year int) (*tibia.EventSchedule, error) {
	content, err := c.get(ctx, tibia.EventScheduleURL(month, year))
	if err != nil {
		return nil, err
	}
	return tibia.ParseEventSchedule(content)
}

// FetchBoostedCreatures reads today's boosted creature and boss from the
// header artwork of the creature library.
func (c *Client) FetchBoostedCreatures(ctx context.Context) (*tibia.BoostedCreatures, error) {
	content, err := c.get(ctx, tibia.CreaturesSectionURL())
	if err != nil {
		return nil, err
	}
	return tibia.ParseBoostedCreatures(content)
}

func (c *Client) FetchCreaturesSection(ctx context.Context) (*tibia.CreaturesSection, error) {
	content, err := c.get(ctx, tibia.CreaturesSectionURL())
	if err != nil {
		return nil, err
	}
	return tibia.ParseCreaturesSection(content)
}

func (c *Client) FetchCreature(ctx context.Context, identifier string) (*tibia.Creature, error) {
	content, err := c.get(ctx, tibia.CreatureURL(identifier))
	if err != nil {
		return nil, err
	}
	return tibia.ParseCreature(content)
}

func (c *Client) FetchBoostableBosses(ctx context.Context) (*tibia.BoostableBosses, error) {
	content, err := c.get(ctx, tibia.BoostableBossesURL())
	if err != nil {
		return nil, err
	}
	return tibia.ParseBoostableBosses(content)
}

func (c *Client) FetchSpellsSection(ctx context.Context) (*tibia.SpellsSection, error) {
	content, err := c.get(ctx, tibia.SpellsSectionURL())
	if err != nil {
		return nil, err
	}
	return tibia.ParseSpellsSection(content)
}

func (c *Client) FetchSpell(ctx context.Context, identifier string) (*tibia.Spell, error) {
	content, err := c.get(ctx, tibia.SpellURL(identifier))
	if err != nil {
		return nil, err
	}
	return tibia.ParseSpell(content)
}

func (c *Client) FetchForumSection(ctx context.Context, sectionID int) (*tibia.ForumSection, error) {
	content, err := c.get(ctx, tibia.ForumSectionURL(sectionID))
	if err != nil {
		return nil, err
	}
	return tibia.ParseForumSection(content)
}

func (c *Client) FetchForumBoard(ctx context.Context, boardID, page, threadAge int) (*tibia.ForumBoard, error) {
	content, err := c.get(ctx, tibia.ForumBoardURL(boardID, page, threadAge))
	if err != nil {
		return nil, err
	}
	return tibia.ParseForumBoard(content)
}

func (c *Client) FetchForumThread(ctx context.Context, threadID, page int) (*tibia.ForumThread, error) {
	content, err := c.get(ctx, tibia.ForumThreadURL(threadID, page))
	if err != nil {
		return nil, err
	}
	return tibia.ParseForumThread(content)
}

func (c *Client) FetchCharacterBazaar(ctx context.Context, history bool, page int) (*tibia.CharacterBazaar, error) {
	content, err := c.get(ctx, tibia.CharacterBazaarURL(history, page))
	if err != nil {
		return nil, err
	}
	return tibia.ParseCharacterBazaar(content)
}

// FetchAuction fetches an auction's detail page. Detail pages reached by
// direct link omit the auction id, so it is filled in from the request
// when the parser could not recover it.
func (c *Client) FetchAuction(ctx context.Context, auctionID int) (*tibia.Auction, error) {
	content, err := c.get(ctx, tibia.AuctionURL(auctionID))
	if err != nil {
		return nil, err
	}
	auction, err := tibia.ParseAuction(content)
	if auction != nil && auction.ID == 0 {
		auction.ID = auctionID
	}
	return auction, err
}
