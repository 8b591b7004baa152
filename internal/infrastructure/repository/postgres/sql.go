package postgres

const rowTable = "fixture_rows"

const upsertRowQuery = `
INSERT INTO fixture_rows (
	fixture_id, is_ended,
	home_score, away_score,
	home_ht_score, away_ht_score,
	home_ft_score, away_ft_score,
	home_corners, away_corners,
	home_corners_ht, away_corners_ht,
	home_corners_ft, away_corners_ft,
	home_yellow_card, away_yellow_card,
	home_yellow_card_ht, away_yellow_card_ht,
	home_yellow_card_ft, away_yellow_card_ft,
	last_update
) VALUES (
	:fixture_id, :is_ended,
	:home_score, :away_score,
	:home_ht_score, :away_ht_score,
	:home_ft_score, :away_ft_score,
	:home_corners, :away_corners,
	:home_corners_ht, :away_corners_ht,
	:home_corners_ft, :away_corners_ft,
	:home_yellow_card, :away_yellow_card,
	:home_yellow_card_ht, :away_yellow_card_ht,
	:home_yellow_card_ft, :away_yellow_card_ft,
	:last_update
)
ON CONFLICT (fixture_id) DO UPDATE SET
	is_ended = EXCLUDED.is_ended,
	home_score = EXCLUDED.home_score,
	away_score = EXCLUDED.away_score,
	home_ht_score = EXCLUDED.home_ht_score,
	away_ht_score = EXCLUDED.away_ht_score,
	home_ft_score = EXCLUDED.home_ft_score,
	away_ft_score = EXCLUDED.away_ft_score,
	home_corners = EXCLUDED.home_corners,
	away_corners = EXCLUDED.away_corners,
	home_corners_ht = EXCLUDED.home_corners_ht,
	away_corners_ht = EXCLUDED.away_corners_ht,
	home_corners_ft = EXCLUDED.home_corners_ft,
	away_corners_ft = EXCLUDED.away_corners_ft,
	home_yellow_card = EXCLUDED.home_yellow_card,
	away_yellow_card = EXCLUDED.away_yellow_card,
	home_yellow_card_ht = EXCLUDED.home_yellow_card_ht,
	away_yellow_card_ht = EXCLUDED.away_yellow_card_ht,
	home_yellow_card_ft = EXCLUDED.home_yellow_card_ft,
	away_yellow_card_ft = EXCLUDED.away_yellow_card_ft,
	last_update = EXCLUDED.last_update
`

const deleteRowQuery = `DELETE FROM fixture_rows WHERE fixture_id = $1`

const deleteAllRowsQuery = `DELETE FROM fixture_rows`

const selectColumnsQuery = `
SELECT column_name
FROM information_schema.columns
WHERE table_schema = current_schema() AND table_name = $1
`
