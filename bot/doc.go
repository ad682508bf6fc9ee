// Package bot is the Twitch chat command layer.
//
// It has two parts:
//   - Handler: turns one chat message into at most one reply. It knows the
//     command set (!char, character aliases, lore get/set, !join, !turfwar,
//     !help) and converts every lookup or store error into reply text, so no
//     per-message failure reaches the connection loop.
//   - Bot: connects to Twitch IRC with github.com/gempir/go-twitch-irc/v4,
//     derives the moderator flag from the moderator/broadcaster badges and
//     sends handler replies threaded to the triggering message.
//
// Credentials: the IRC client needs the bot login and a user OAuth token with
// chat:read/chat:edit scopes (TWITCH_BOT_USERNAME, TWITCH_OAUTH_TOKEN).
package bot
