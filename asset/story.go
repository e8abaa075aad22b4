package asset

// DefaultStory is the built-in narrative used when no story file is given
const DefaultStory = `
title: "Two Centuries of Carbon"
present_year: 2024
world_file: "countries.json"
region_file: "regions.csv"

intro:
  title: "Two Centuries of Carbon"
  body: >
    Anthropogenic CO2 flux, binned on a one-degree grid, from the first coal
    furnaces to the present. Press Enter to travel back in time.

conclusion:
  title: "Back in the Present"
  body: >
    The map is the sum of every chapter you scrolled through. Drag the globe
    to explore, press r to replay the regional race, or t to revisit the timeline.
  globe_file: "2014.csv"

steps:
  - id: coal
    block: "The Age of Coal"
    title: "Steam and smoke"
    body: >
      Britain burns coal at an industrial scale. The emission map is almost
      empty, a handful of cells around Manchester and the Ruhr.
    region: "Europe"
    lon: -2
    lat: 53
    zoom: 2.4
    event_year: 1850
    after_years: 30
    globe_file: "{year}.csv"
    chart_file: "regions.csv"

  - id: rail
    block: "The Age of Coal"
    title: "Rails across a continent"
    body: >
      Railways and steel push emissions west across North America.
    region: "North America"
    lon: -85
    lat: 40
    zoom: 1.8
    event_year: 1880
    after_years: 30
    globe_file: "{year}.csv"
    chart_file: "regions.csv"

  - id: oil
    block: "The Age of Oil"
    title: "The great acceleration"
    body: >
      After 1950 cars, plastics and cheap power multiply the flux almost
      everywhere in the northern hemisphere.
    region: "North America"
    lon: -95
    lat: 38
    zoom: 1.4
    event_year: 1950
    after_years: 20
    globe_file: "{year}.csv"
    chart_file: "regions.csv"

  - id: asia
    block: "The Age of Oil"
    title: "The center of gravity moves east"
    body: >
      From the 1990s East Asia industrializes faster than any region before it.
    region: "Asia"
    lon: 110
    lat: 32
    zoom: 1.8
    event_year: 1990
    after_years: 20
    globe_file: "{year}.csv"
    chart_file: "regions.csv"

  - id: south
    block: "A Shared Atmosphere"
    title: "Everyone, everywhere"
    body: >
      By the 2000s the southern hemisphere lights up too. India, Brazil and
      South Africa join the map.
    region: "South America"
    lon: -50
    lat: -12
    zoom: 1.5
    event_year: 2000
    after_years: 14
    globe_file: "{year}.csv"
    chart_file: "regions.csv"
`
