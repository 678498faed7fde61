package domain

// AchievementsAvailable is the number of achievements the game offers.
// A fixed external fact, listed on the game wiki; update when the game adds
// achievements.
const AchievementsAvailable = 34
