package openai

const summarySystemPrompt = "You are an AI assistant that analyzes school announcements and documents. Always respond with valid JSON."

const summaryPromptTemplate = `Please analyze this school announcement and provide:
1. A brief summary (2-3 sentences)
2. Key points (bullet list)
3. Important dates mentioned
4. Any action items for parents/students

Announcement text:
%s

Please format your response as JSON with the following structure:
{
    "summary": "Brief summary here",
    "key_points": ["Point 1", "Point 2", "Point 3"],
    "important_dates": ["Date 1", "Date 2"],
    "action_items": ["Action 1", "Action 2"]
}`

const eventsSystemPrompt = "You are an AI assistant that extracts event information from school announcements. Focus only on events relevant to parents and students. Always respond with valid JSON."

const eventsPromptTemplate = `Analyze this school announcement and extract any events or important dates.
For each event found, provide:
1. Event title/name
2. Date (if mentioned)
3. Time (if mentioned)
4. Location (if mentioned)
5. Description
6. Any supplies needed
7. Deadline for supplies (if mentioned)

Only extract actual events that parents/students need to know about.
Do NOT extract:
- Regular classroom lessons
- Internal assessments
- Administrative tasks
- General curriculum activities

Announcement text:
%s

Please format your response as JSON:
{
    "events_found": [
        {
            "title": "Event name",
            "date": "YYYY-MM-DD or 'Unknown'",
            "time": "HH:MM or 'All day' or 'Unknown'",
            "location": "Location or 'Unknown'",
            "description": "Event description",
            "supplies_needed": "List of supplies or 'None'",
            "supplies_deadline": "YYYY-MM-DD or 'Unknown'"
        }
    ],
    "total_events": 0
}`

const actionItemsSystemPrompt = "You are an AI assistant that identifies action items and tasks from school announcements. Always respond with valid JSON."

const actionItemsPromptTemplate = `Analyze this school announcement and extract any action items or tasks that parents/students need to do.

For each action item, provide:
1. What needs to be done
2. Who needs to do it (parents, students, or both)
3. Deadline (if mentioned)
4. Priority level (high, medium, low)

Examples of action items:
- Submit permission slips
- Bring supplies
- Register for events
- Complete forms
- Make payments

Announcement text:
%s

Please format your response as JSON:
{
    "action_items": [
        {
            "task": "Description of what needs to be done",
            "who": "parents/students/both",
            "deadline": "YYYY-MM-DD or 'No deadline specified'",
            "priority": "high/medium/low"
        }
    ],
    "total_items": 0
}`
